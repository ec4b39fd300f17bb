package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"school-records/models"
	"school-records/store"
)

// stubStudentStore is an in-memory StudentStore with the same visible
// semantics as the pgx implementation: ids assigned in insertion order and
// never reused, ErrNotFound for missing rows, partial updates applied only
// for non-nil fields.
type stubStudentStore struct {
	students map[int]models.Student
	nextID   int
	err      error // when set, every call fails with it
}

func newStubStudentStore() *stubStudentStore {
	return &stubStudentStore{students: make(map[int]models.Student), nextID: 1}
}

func (s *stubStudentStore) List(ctx context.Context) ([]models.Student, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := []models.Student{}
	for _, st := range s.students {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubStudentStore) Get(ctx context.Context, id int) (models.Student, error) {
	if s.err != nil {
		return models.Student{}, s.err
	}
	st, ok := s.students[id]
	if !ok {
		return models.Student{}, store.ErrNotFound
	}
	return st, nil
}

func (s *stubStudentStore) Create(ctx context.Context, name string, age int, grade string) (models.Student, error) {
	if s.err != nil {
		return models.Student{}, s.err
	}
	st := models.Student{ID: s.nextID, Name: name, Age: age, Grade: grade}
	s.students[st.ID] = st
	s.nextID++
	return st, nil
}

func (s *stubStudentStore) Update(ctx context.Context, id int, req models.UpdateStudentRequest) (models.Student, error) {
	if s.err != nil {
		return models.Student{}, s.err
	}
	st, ok := s.students[id]
	if !ok {
		return models.Student{}, store.ErrNotFound
	}
	if req.Name != nil {
		st.Name = *req.Name
	}
	if req.Age != nil {
		st.Age = *req.Age
	}
	if req.Grade != nil {
		st.Grade = *req.Grade
	}
	s.students[id] = st
	return st, nil
}

func (s *stubStudentStore) Delete(ctx context.Context, id int) (models.Student, error) {
	if s.err != nil {
		return models.Student{}, s.err
	}
	st, ok := s.students[id]
	if !ok {
		return models.Student{}, store.ErrNotFound
	}
	delete(s.students, id)
	return st, nil
}

func newStudentApp() (*fiber.App, *stubStudentStore) {
	app := fiber.New()
	st := newStubStudentStore()
	NewStudentHandler(st).Register(app)
	return app, st
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	resp.Body.Close()
	return resp, data
}

func detailOf(t *testing.T, data []byte) string {
	t.Helper()
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("unmarshal error body %q: %v", data, err)
	}
	return body.Detail
}

func TestStudentLifecycle(t *testing.T) {
	app, _ := newStudentApp()

	resp, data := doJSON(t, app, "POST", "/students/", `{"name":"Ada","age":30,"grade":"A"}`)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create: got status %d, want 201 (body %s)", resp.StatusCode, data)
	}
	var created models.Student
	if err := json.Unmarshal(data, &created); err != nil {
		t.Fatalf("unmarshal created: %v", err)
	}
	want := models.Student{ID: 1, Name: "Ada", Age: 30, Grade: "A"}
	if created != want {
		t.Fatalf("create: got %+v, want %+v", created, want)
	}

	resp, data = doJSON(t, app, "GET", "/students/1", "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("get: got status %d, want 200", resp.StatusCode)
	}
	var fetched models.Student
	if err := json.Unmarshal(data, &fetched); err != nil {
		t.Fatalf("unmarshal fetched: %v", err)
	}
	if fetched != created {
		t.Fatalf("get after create: got %+v, want %+v", fetched, created)
	}

	// Partial update: only age changes, name and grade are preserved.
	resp, data = doJSON(t, app, "PUT", "/students/1", `{"age":31}`)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("update: got status %d, want 200", resp.StatusCode)
	}
	var updated models.Student
	if err := json.Unmarshal(data, &updated); err != nil {
		t.Fatalf("unmarshal updated: %v", err)
	}
	want = models.Student{ID: 1, Name: "Ada", Age: 31, Grade: "A"}
	if updated != want {
		t.Fatalf("partial update: got %+v, want %+v", updated, want)
	}

	// Delete returns the record as it existed before deletion.
	resp, data = doJSON(t, app, "DELETE", "/students/1", "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("delete: got status %d, want 200", resp.StatusCode)
	}
	var deleted models.Student
	if err := json.Unmarshal(data, &deleted); err != nil {
		t.Fatalf("unmarshal deleted: %v", err)
	}
	if deleted != want {
		t.Fatalf("delete: got %+v, want %+v", deleted, want)
	}

	resp, data = doJSON(t, app, "GET", "/students/1", "")
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("get after delete: got status %d, want 404", resp.StatusCode)
	}
	if detail := detailOf(t, data); detail != "Student not found" {
		t.Fatalf("get after delete: got detail %q, want %q", detail, "Student not found")
	}
}

func TestStudentNotFound(t *testing.T) {
	app, _ := newStudentApp()

	cases := []struct {
		method, path, body string
	}{
		{"GET", "/students/42", ""},
		{"PUT", "/students/42", `{"age":20}`},
		{"DELETE", "/students/42", ""},
	}
	for _, tc := range cases {
		resp, data := doJSON(t, app, tc.method, tc.path, tc.body)
		if resp.StatusCode != fiber.StatusNotFound {
			t.Errorf("%s %s: got status %d, want 404", tc.method, tc.path, resp.StatusCode)
		}
		if detail := detailOf(t, data); detail != "Student not found" {
			t.Errorf("%s %s: got detail %q, want %q", tc.method, tc.path, detail, "Student not found")
		}
	}
}

func TestStudentDeleteTwice(t *testing.T) {
	app, _ := newStudentApp()
	doJSON(t, app, "POST", "/students/", `{"name":"Bob","age":19,"grade":"B"}`)

	resp, _ := doJSON(t, app, "DELETE", "/students/1", "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("first delete: got status %d, want 200", resp.StatusCode)
	}
	resp, _ = doJSON(t, app, "DELETE", "/students/1", "")
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("second delete: got status %d, want 404", resp.StatusCode)
	}
}

func TestStudentCreateValidation(t *testing.T) {
	app, _ := newStudentApp()

	cases := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"malformed json", `{"name":`},
		{"missing name", `{"age":20,"grade":"B"}`},
		{"missing age", `{"name":"Bob","grade":"B"}`},
		{"missing grade", `{"name":"Bob","age":20}`},
		{"wrong type", `{"name":"Bob","age":"twenty","grade":"B"}`},
		{"empty name", `{"name":"","age":20,"grade":"B"}`},
	}
	for _, tc := range cases {
		resp, data := doJSON(t, app, "POST", "/students/", tc.body)
		if resp.StatusCode != fiber.StatusUnprocessableEntity {
			t.Errorf("%s: got status %d, want 422", tc.name, resp.StatusCode)
		}
		if detail := detailOf(t, data); detail == "" {
			t.Errorf("%s: error body has no detail", tc.name)
		}
	}

	// Zero is a legitimate integer value, not a missing field.
	resp, _ := doJSON(t, app, "POST", "/students/", `{"name":"Eve","age":0,"grade":"C"}`)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("age zero: got status %d, want 201", resp.StatusCode)
	}
}

func TestStudentInvalidID(t *testing.T) {
	app, _ := newStudentApp()

	for _, tc := range []struct{ method, path string }{
		{"GET", "/students/abc"},
		{"PUT", "/students/abc"},
		{"DELETE", "/students/abc"},
	} {
		resp, _ := doJSON(t, app, tc.method, tc.path, `{}`)
		if resp.StatusCode != fiber.StatusUnprocessableEntity {
			t.Errorf("%s %s: got status %d, want 422", tc.method, tc.path, resp.StatusCode)
		}
	}
}

func TestStudentList(t *testing.T) {
	app, _ := newStudentApp()

	resp, data := doJSON(t, app, "GET", "/students/", "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("empty list: got status %d, want 200", resp.StatusCode)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Fatalf("empty list: got body %q, want []", data)
	}

	doJSON(t, app, "POST", "/students/", `{"name":"Ada","age":30,"grade":"A"}`)
	doJSON(t, app, "POST", "/students/", `{"name":"Bob","age":19,"grade":"B"}`)
	doJSON(t, app, "POST", "/students/", `{"name":"Eve","age":25,"grade":"C"}`)
	doJSON(t, app, "DELETE", "/students/2", "")

	_, data = doJSON(t, app, "GET", "/students/", "")
	var listed []models.Student
	if err := json.Unmarshal(data, &listed); err != nil {
		t.Fatalf("unmarshal list: %v", err)
	}

	// List reflects exactly the non-deleted rows, order-independent.
	got := map[int]models.Student{}
	for _, st := range listed {
		got[st.ID] = st
	}
	want := map[int]models.Student{
		1: {ID: 1, Name: "Ada", Age: 30, Grade: "A"},
		3: {ID: 3, Name: "Eve", Age: 25, Grade: "C"},
	}
	if len(got) != len(want) {
		t.Fatalf("list: got %d students, want %d", len(got), len(want))
	}
	for id, st := range want {
		if got[id] != st {
			t.Errorf("list: got %+v for id %d, want %+v", got[id], id, st)
		}
	}
}

func TestStudentStoreFault(t *testing.T) {
	app, st := newStudentApp()
	st.err = context.DeadlineExceeded

	resp, data := doJSON(t, app, "GET", "/students/", "")
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("store fault: got status %d, want 500", resp.StatusCode)
	}
	if detail := detailOf(t, data); detail == "" {
		t.Fatal("store fault: error body has no detail")
	}
}
