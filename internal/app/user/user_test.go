package user

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userdeck/internal/pkg/errs"
)

func TestDraftValidate(t *testing.T) {
	tests := []struct {
		name    string
		draft   Draft
		wantErr bool
	}{
		{name: "valid", draft: Draft{FirstName: "Ada", Age: 30}, wantErr: false},
		{name: "valid without company", draft: Draft{FirstName: "Ada", Age: 1}, wantErr: false},
		{name: "missing first name", draft: Draft{Age: 30}, wantErr: true},
		{name: "zero age", draft: Draft{FirstName: "Ada"}, wantErr: true},
		{name: "negative age", draft: Draft{FirstName: "Ada", Age: -2}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			customErr := tt.draft.Validate()
			if tt.wantErr {
				require.NotNil(t, customErr)
				assert.Equal(t, errs.ErrDraftInvalid, customErr.Code)
			} else {
				assert.Nil(t, customErr)
			}
		})
	}
}

func TestNewDraftIsEmpty(t *testing.T) {
	d := NewDraft()
	assert.Empty(t, d.FirstName)
	assert.Zero(t, d.Age)
	assert.Empty(t, d.CompanyID)
	assert.Equal(t, AvatarNone, d.Avatar.Kind)
}

func TestValidateAvatarFile(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		mimeType string
		size     int64
		wantCode int
	}{
		{name: "png ok", fileName: "a.png", mimeType: "image/png", size: 1024, wantCode: 0},
		{name: "jpeg ok", fileName: "photo.JPG", mimeType: "image/jpeg", size: 2048, wantCode: 0},
		{name: "empty file", fileName: "a.png", mimeType: "image/png", size: 0, wantCode: errs.ErrInvalidParams},
		{name: "too large", fileName: "a.png", mimeType: "image/png", size: MaxAvatarSize + 1, wantCode: errs.ErrAvatarTooLarge},
		{name: "non-image mime", fileName: "a.pdf", mimeType: "application/pdf", size: 1024, wantCode: errs.ErrAvatarTypeInvalid},
		{name: "extension mismatch", fileName: "a.png", mimeType: "image/jpeg", size: 1024, wantCode: errs.ErrAvatarTypeInvalid},
		{name: "unknown extension", fileName: "a.bin", mimeType: "image/png", size: 1024, wantCode: errs.ErrAvatarTypeInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			customErr := ValidateAvatarFile(tt.fileName, tt.mimeType, tt.size)
			if tt.wantCode == 0 {
				assert.Nil(t, customErr)
			} else {
				require.NotNil(t, customErr)
				assert.Equal(t, tt.wantCode, customErr.Code)
			}
		})
	}
}

func TestStagedFilePreviewDataURL(t *testing.T) {
	f := &StagedFile{Name: "a.png", MimeType: "image/png", Data: []byte{0x89, 0x50, 0x4e, 0x47}}

	preview := f.PreviewDataURL()

	assert.True(t, strings.HasPrefix(preview, "data:image/png;base64,"))
	assert.Equal(t, "data:image/png;base64,iVBORw==", preview)
}

func TestAvatarInputConstructors(t *testing.T) {
	assert.Equal(t, AvatarNone, AvatarInputNone().Kind)

	u := AvatarInputURL("http://x/a.png")
	assert.Equal(t, AvatarURL, u.Kind)
	assert.Equal(t, "http://x/a.png", u.URL)

	f := AvatarInputFile(&StagedFile{Name: "a.png"})
	assert.Equal(t, AvatarFile, f.Kind)
	require.NotNil(t, f.File)
	assert.Equal(t, "a.png", f.File.Name)
}
