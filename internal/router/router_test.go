package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pet-adoption/internal/router"
)

// lunes 2025-12-22 10:00 UTC
var fixedNow = func() time.Time { return time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC) }

var pngData = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01")

const adminID = "admin-1"

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(router.NewRouter(router.Options{Now: fixedNow}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_AdoptionFlow(t *testing.T) {
	ts := newServer(t)
	applicant := "user-1"

	// 1) Admin publica el animal
	animalID := createAnimal(t, ts.URL, "Luna")

	// 2) Sin documentos no se puede pedir
	{
		st, body := doReq(t, ts.URL, "POST", "/requests", applicant, "", map[string]any{"animal_id": animalID})
		if st != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422 without documents, got %d body=%s", st, string(body))
		}
	}

	// 3) Sube y el admin aprueba los tres documentos
	for _, typ := range []string{"identification", "proof_of_address", "national_id"} {
		docID := uploadDoc(t, ts.URL, applicant, typ)
		st, body := doReq(t, ts.URL, "POST", "/documents/"+docID+"/review", adminID, "admin", map[string]any{"decision": "approved"})
		if st != http.StatusOK {
			t.Fatalf("expected 200 review, got %d body=%s", st, string(body))
		}
	}
	{
		var out struct {
			Status string `json:"status"`
		}
		getJSON(t, ts.URL, "/applicants/"+applicant+"/documents/status", applicant, &out)
		if out.Status != "aprobado" {
			t.Fatalf("expected aprobado, got %q", out.Status)
		}
	}

	// 4) Pedido de adopción: el animal queda reservado
	var reqOut struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	{
		st, body := doReq(t, ts.URL, "POST", "/requests", applicant, "", map[string]any{"animal_id": animalID})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create request, got %d body=%s", st, string(body))
		}
		mustUnmarshal(t, body, &reqOut)
		if reqOut.Status != "pending" {
			t.Fatalf("expected pending, got %s", reqOut.Status)
		}

		var a struct {
			State string `json:"state"`
		}
		getJSON(t, ts.URL, "/animals/"+animalID, applicant, &a)
		if a.State != "reserved" {
			t.Fatalf("expected reserved animal, got %s", a.State)
		}
	}
	assertPhase(t, ts.URL, applicant, "book_appointment")

	// 5) Horarios libres y agenda de visita
	{
		var slots struct {
			Times []string `json:"times"`
		}
		getJSON(t, ts.URL, "/appointments/slots?date=2025-12-23", applicant, &slots)
		if len(slots.Times) == 0 || slots.Times[0] != "09:00" {
			t.Fatalf("unexpected free slots %v", slots.Times)
		}
	}
	var apptOut struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	{
		st, body := doReq(t, ts.URL, "POST", "/requests/"+reqOut.ID+"/appointments", applicant, "", map[string]any{"date": "2025-12-23", "time": "10:00"})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 confirm appointment, got %d body=%s", st, string(body))
		}
		mustUnmarshal(t, body, &apptOut)
	}
	assertPhase(t, ts.URL, applicant, "awaiting_visit")

	// 6) El admin registra la visita
	{
		st, body := doReq(t, ts.URL, "POST", "/appointments/"+apptOut.ID+"/evaluate", adminID, "admin", map[string]any{
			"attendance":  "attended",
			"interaction": "approved",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 evaluate, got %d body=%s", st, string(body))
		}
	}
	assertPhase(t, ts.URL, applicant, "complete_final_form")

	// 7) Formulario final y aprobación
	var adoptionOut struct {
		ID             string `json:"id"`
		Status         string `json:"status"`
		CertificateKey string `json:"certificate_key"`
	}
	{
		st, body := doReq(t, ts.URL, "POST", "/requests/"+reqOut.ID+"/adoption", applicant, "", map[string]any{"notes": "tengo patio"})
		if st != http.StatusOK {
			t.Fatalf("expected 200 open review, got %d body=%s", st, string(body))
		}
		mustUnmarshal(t, body, &adoptionOut)
	}
	assertPhase(t, ts.URL, applicant, "under_review")
	{
		st, body := doReq(t, ts.URL, "POST", "/adoptions/"+adoptionOut.ID+"/decision", adminID, "admin", map[string]any{
			"decision":       "approved",
			"contract_ref":   "CT-001",
			"follow_up_date": "2026-01-22",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 decision, got %d body=%s", st, string(body))
		}
		mustUnmarshal(t, body, &adoptionOut)
		if adoptionOut.Status != "approved" || adoptionOut.CertificateKey == "" {
			t.Fatalf("unexpected adoption %+v", adoptionOut)
		}
	}
	assertPhase(t, ts.URL, applicant, "adopted")

	// 8) El animal quedó adoptado y fuera del catálogo
	{
		var a struct {
			State string `json:"state"`
		}
		getJSON(t, ts.URL, "/animals/"+animalID, applicant, &a)
		if a.State != "adopted" {
			t.Fatalf("expected adopted animal, got %s", a.State)
		}
	}

	// 9) Otro postulante no puede ver la etapa ajena
	{
		st, _ := doReq(t, ts.URL, "GET", "/applicants/"+applicant+"/phase", "user-2", "", nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 reading someone else's phase, got %d", st)
		}
	}
}

func TestHTTP_Unauthenticated(t *testing.T) {
	ts := newServer(t)

	st, _ := doReq(t, ts.URL, "GET", "/me/phase", "", "", nil)
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 without user, got %d", st)
	}

	st, body := doReq(t, ts.URL, "GET", "/health", "", "", nil)
	if st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("expected health ok, got %d %s", st, string(body))
	}
}

func TestHTTP_SlotConflictAndWeekend(t *testing.T) {
	ts := newServer(t)

	reqA := readyRequest(t, ts.URL, "user-a", createAnimal(t, ts.URL, "Toby"))
	reqB := readyRequest(t, ts.URL, "user-b", createAnimal(t, ts.URL, "Nina"))

	st, body := doReq(t, ts.URL, "POST", "/requests/"+reqA+"/appointments", "user-a", "", map[string]any{"date": "2025-12-27", "time": "10:00"})
	if st != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 on saturday, got %d body=%s", st, string(body))
	}

	st, body = doReq(t, ts.URL, "POST", "/requests/"+reqA+"/appointments", "user-a", "", map[string]any{"date": "2025-12-23", "time": "11:00"})
	if st != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", st, string(body))
	}

	st, body = doReq(t, ts.URL, "POST", "/requests/"+reqB+"/appointments", "user-b", "", map[string]any{"date": "2025-12-23", "time": "11:00"})
	if st != http.StatusConflict {
		t.Fatalf("expected 409 for a taken slot, got %d body=%s", st, string(body))
	}
	var e map[string]string
	mustUnmarshal(t, body, &e)
	if e["error"] != "slot_conflict" {
		t.Fatalf("expected slot_conflict code, got %v", e)
	}
}

func TestHTTP_UploadRejectsUnknownType(t *testing.T) {
	ts := newServer(t)

	st, body := postMultipart(t, ts.URL, "user-1", "passport", pngData)
	if st != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for unknown document type, got %d body=%s", st, string(body))
	}
}

// readyRequest deja al postulante con documentos aprobados y un pedido pendiente.
func readyRequest(t *testing.T, baseURL, applicant, animalID string) string {
	t.Helper()
	for _, typ := range []string{"identification", "proof_of_address", "national_id"} {
		docID := uploadDoc(t, baseURL, applicant, typ)
		if st, body := doReq(t, baseURL, "POST", "/documents/"+docID+"/review", adminID, "admin", map[string]any{"decision": "approved"}); st != http.StatusOK {
			t.Fatalf("review: %d %s", st, string(body))
		}
	}
	st, body := doReq(t, baseURL, "POST", "/requests", applicant, "", map[string]any{"animal_id": animalID})
	if st != http.StatusCreated {
		t.Fatalf("create request: %d %s", st, string(body))
	}
	var out struct {
		ID string `json:"id"`
	}
	mustUnmarshal(t, body, &out)
	return out.ID
}

func createAnimal(t *testing.T, baseURL, name string) string {
	t.Helper()
	st, body := doReq(t, baseURL, "POST", "/animals", adminID, "admin", map[string]any{
		"name":    name,
		"species": "dog",
		"breed":   "mixed",
		"sex":     "female",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create animal, got %d body=%s", st, string(body))
	}
	var out struct {
		ID string `json:"id"`
	}
	mustUnmarshal(t, body, &out)
	if out.ID == "" {
		t.Fatalf("expected animal id")
	}
	return out.ID
}

func uploadDoc(t *testing.T, baseURL, userID, docType string) string {
	t.Helper()
	st, body := postMultipart(t, baseURL, userID, docType, pngData)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 upload, got %d body=%s", st, string(body))
	}
	var out struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	mustUnmarshal(t, body, &out)
	if out.Status != "pending" {
		t.Fatalf("expected pending document, got %s", out.Status)
	}
	return out.ID
}

func assertPhase(t *testing.T, baseURL, applicant, want string) {
	t.Helper()
	var out struct {
		Phase string `json:"phase"`
	}
	getJSON(t, baseURL, "/me/phase", applicant, &out)
	if out.Phase != want {
		t.Fatalf("expected phase %s, got %s", want, out.Phase)
	}
}

func getJSON(t *testing.T, baseURL, path, userID string, out any) {
	t.Helper()
	st, body := doReq(t, baseURL, "GET", path, userID, "", nil)
	if st != http.StatusOK {
		t.Fatalf("GET %s: expected 200, got %d body=%s", path, st, string(body))
	}
	mustUnmarshal(t, body, out)
}

func mustUnmarshal(t *testing.T, body []byte, out any) {
	t.Helper()
	if err := json.Unmarshal(body, out); err != nil {
		t.Fatalf("decode %s: %v", string(body), err)
	}
}

func postMultipart(t *testing.T, baseURL, userID, docType string, data []byte) (int, []byte) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("type", docType); err != nil {
		t.Fatalf("write field: %v", err)
	}
	fw, err := mw.CreateFormFile("file", docType+".png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+"/documents", &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Debug-User-ID", userID)
	return send(t, req)
}

func doReq(t *testing.T, baseURL, method, path, debugUserID, debugRole string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}
	if debugRole != "" {
		req.Header.Set("X-Debug-Role", debugRole)
	}
	return send(t, req)
}

func send(t *testing.T, req *http.Request) (int, []byte) {
	t.Helper()
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	b, _ := io.ReadAll(res.Body)
	return res.StatusCode, b
}
