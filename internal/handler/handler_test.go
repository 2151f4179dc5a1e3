package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userdeck/internal/app/directory"
	"userdeck/internal/app/mirror"
	"userdeck/internal/app/presign"
	"userdeck/internal/app/session"
	"userdeck/internal/app/user"
	"userdeck/internal/configs"
	"userdeck/internal/pkg/errs"
)

type stubDirectory struct {
	records   []user.Record
	created   []directory.CreatePayload
	deleteIDs []string
}

func (d *stubDirectory) List(ctx context.Context) ([]user.Record, *errs.CustomError) {
	return d.records, nil
}

func (d *stubDirectory) Create(ctx context.Context, payload directory.CreatePayload) (user.Record, *errs.CustomError) {
	d.created = append(d.created, payload)
	record := user.Record{ID: "99", FirstName: payload.FirstName, Age: payload.Age, CompanyID: payload.CompanyID}
	if payload.Avatar != nil {
		record.Avatar = *payload.Avatar
	}
	return record, nil
}

func (d *stubDirectory) Delete(ctx context.Context, id string) *errs.CustomError {
	d.deleteIDs = append(d.deleteIDs, id)
	return nil
}

type stubUploader struct{}

func (stubUploader) Generate(ctx context.Context, fileName, fileType string) (presign.Slot, *errs.CustomError) {
	return presign.Slot{UploadURL: "http://storage/upload/abc", FileURL: "http://cdn/files/abc.png"}, nil
}

func (stubUploader) Upload(ctx context.Context, uploadURL, mimeType string, data []byte) *errs.CustomError {
	return nil
}

func newTestServer(t *testing.T, records []user.Record) (*httptest.Server, *stubDirectory) {
	t.Helper()

	dir := &stubDirectory{records: records}
	sess := session.NewSession(dir, stubUploader{}, mirror.NewStore(), nil)
	sess.Load(context.Background())

	cfg := &configs.AppConfig{
		Environment:    "development",
		Port:           8080,
		AllowedOrigins: []string{},
	}

	ts := httptest.NewServer(Router(&AppDeps{Session: sess, Config: cfg}))
	t.Cleanup(ts.Close)
	return ts, dir
}

func postJSON(t *testing.T, url string, body any) map[string]any {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	res, err := http.Post(url, "application/json", reader)
	require.NoError(t, err)
	defer res.Body.Close()

	var envelope map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&envelope))
	return envelope
}

func snapshotData(t *testing.T, envelope map[string]any) map[string]any {
	t.Helper()
	require.EqualValues(t, 0, envelope["code"], "expected success envelope, got %v", envelope)
	data, ok := envelope["data"].(map[string]any)
	require.True(t, ok)
	return data
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	res, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestStateEndpoint(t *testing.T) {
	ts, _ := newTestServer(t, []user.Record{{ID: "1", FirstName: "Ada", Age: 30}})

	res, err := http.Get(ts.URL + "/api/state")
	require.NoError(t, err)
	defer res.Body.Close()

	var envelope map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&envelope))

	data := snapshotData(t, envelope)
	assert.Equal(t, "ready", data["phase"])
	assert.Equal(t, "idle", data["view"])

	users, ok := data["users"].([]any)
	require.True(t, ok)
	require.Len(t, users, 1)
}

func TestSelectAndDeselect(t *testing.T) {
	ts, _ := newTestServer(t, []user.Record{{ID: "1", FirstName: "Ada", Age: 30}})

	data := snapshotData(t, postJSON(t, ts.URL+"/api/users/select", map[string]string{"id": "1"}))
	assert.Equal(t, "detail", data["view"])

	detail, ok := data["detail"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "1", detail["id"])

	data = snapshotData(t, postJSON(t, ts.URL+"/api/users/deselect", nil))
	assert.Equal(t, "idle", data["view"])
}

func TestSelect_RejectsMissingID(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	envelope := postJSON(t, ts.URL+"/api/users/select", map[string]string{"id": ""})
	assert.EqualValues(t, errs.ErrInvalidParams, envelope["code"])
}

func TestDeleteFlowOverAPI(t *testing.T) {
	ts, dir := newTestServer(t, []user.Record{{ID: "5", FirstName: "Eve", Age: 33}})

	data := snapshotData(t, postJSON(t, ts.URL+"/api/users/delete/request", map[string]string{"id": "5"}))
	assert.Equal(t, "confirming-delete", data["view"])
	assert.Equal(t, "5", data["pendingDeleteId"])
	// Requesting a delete never opens the detail view.
	assert.Nil(t, data["detail"])

	data = snapshotData(t, postJSON(t, ts.URL+"/api/users/delete/confirm", nil))
	assert.Equal(t, "idle", data["view"])
	assert.Equal(t, []string{"5"}, dir.deleteIDs)

	users, _ := data["users"].([]any)
	assert.Empty(t, users)
}

func TestDraftFlowOverAPI(t *testing.T) {
	ts, dir := newTestServer(t, nil)

	data := snapshotData(t, postJSON(t, ts.URL+"/api/users/draft/open", nil))
	assert.Equal(t, "adding", data["view"])

	postJSON(t, ts.URL+"/api/users/draft/field", map[string]string{"name": "firstName", "value": "Ada"})
	postJSON(t, ts.URL+"/api/users/draft/field", map[string]string{"name": "age", "value": "30"})
	postJSON(t, ts.URL+"/api/users/draft/avatar-url", map[string]string{"url": "http://x/a.png"})

	data = snapshotData(t, postJSON(t, ts.URL+"/api/users/draft/submit", nil))
	assert.Equal(t, "idle", data["view"])

	require.Len(t, dir.created, 1)
	require.NotNil(t, dir.created[0].Avatar)
	assert.Equal(t, "http://x/a.png", *dir.created[0].Avatar)

	users, _ := data["users"].([]any)
	require.Len(t, users, 1)
}

func TestAvatarFileStagingOverAPI(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	postJSON(t, ts.URL+"/api/users/draft/open", nil)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="avatar"; filename="a.png"`)
	header.Set("Content-Type", "image/png")
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	res, err := http.Post(ts.URL+"/api/users/draft/avatar-file", writer.FormDataContentType(), &buf)
	require.NoError(t, err)
	defer res.Body.Close()

	var envelope map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&envelope))

	data := snapshotData(t, envelope)
	draft, ok := data["draft"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "file", draft["avatarKind"])
	assert.Equal(t, "a.png", draft["avatarFileName"])
	preview, _ := draft["avatarPreview"].(string)
	assert.True(t, strings.HasPrefix(preview, "data:image/png;base64,"))
}

func TestBadJSONRejected(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	res, err := http.Post(ts.URL+"/api/users/select", "text/plain", strings.NewReader("nope"))
	require.NoError(t, err)
	defer res.Body.Close()

	var envelope map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&envelope))
	assert.EqualValues(t, errs.ErrUnsupportedMediaType, envelope["code"])
}

func TestPageAndPlaceholderServed(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	res, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, res.Header.Get("Content-Type"), "text/html")

	res2, err := http.Get(ts.URL + "/assets/default-avatar.svg")
	require.NoError(t, err)
	defer res2.Body.Close()
	assert.Equal(t, http.StatusOK, res2.StatusCode)
	assert.Contains(t, res2.Header.Get("Content-Type"), "image/svg+xml")
}

func TestWebSocketStreamsSnapshots(t *testing.T) {
	ts, _ := newTestServer(t, []user.Record{{ID: "1", FirstName: "Ada", Age: 30}})

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, res, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if res != nil {
		res.Body.Close()
	}
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var initial session.Snapshot
	require.NoError(t, conn.ReadJSON(&initial))
	assert.Equal(t, session.PhaseReady, initial.Phase)
	require.Len(t, initial.Users, 1)

	// A workflow transition through the API shows up on the socket.
	postJSON(t, ts.URL+"/api/users/select", map[string]string{"id": "1"})

	var next session.Snapshot
	require.NoError(t, conn.ReadJSON(&next))
	assert.Equal(t, session.ViewDetail, next.View)
	require.NotNil(t, next.Detail)
	assert.Equal(t, "1", next.Detail.ID)
}
