package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rmoreira/capacita/internal/app/models"
	"github.com/rmoreira/capacita/internal/app/models/dto"
	"github.com/rmoreira/capacita/internal/pkg/apperrors"
	"github.com/rmoreira/capacita/internal/pkg/certificate"
)

type fakeStudentStore struct {
	students map[int64]*models.Student
	byCode   map[string]*models.Student

	setCalls   []int64
	clearCalls []int64
	setErr     error
}

func (f *fakeStudentStore) GetByIDFull(ctx context.Context, id int64) (*models.Student, error) {
	st, ok := f.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return st, nil
}

func (f *fakeStudentStore) GetByCode(ctx context.Context, code string) (*models.Student, error) {
	st, ok := f.byCode[code]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return st, nil
}

func (f *fakeStudentStore) ListByIDs(ctx context.Context, ids []int64) ([]*models.Student, error) {
	var out []*models.Student
	for _, id := range ids {
		if st, ok := f.students[id]; ok {
			out = append(out, st)
		}
	}
	return out, nil
}

func (f *fakeStudentStore) SetCertificate(ctx context.Context, id int64, path string, generatedAt time.Time) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.setCalls = append(f.setCalls, id)
	if st, ok := f.students[id]; ok {
		st.CertificatePath = &path
		st.CertificateGenerated = true
		st.CertificateGeneratedAt = &generatedAt
	}
	return nil
}

func (f *fakeStudentStore) ClearCertificate(ctx context.Context, id int64) error {
	f.clearCalls = append(f.clearCalls, id)
	if st, ok := f.students[id]; ok {
		st.CertificatePath = nil
		st.CertificateGenerated = false
		st.CertificateGeneratedAt = nil
	}
	return nil
}

type fakeRenderer struct {
	calls []certificate.RenderData
	err   error
}

func (f *fakeRenderer) Render(data certificate.RenderData) (string, error) {
	f.calls = append(f.calls, data)
	if f.err != nil {
		return "", f.err
	}
	return "/tmp/certs/out.jpg", nil
}

type fakeQR struct{ path string }

func (f *fakeQR) VerificationURL(code string) string { return "http://test/verificar/" + code }
func (f *fakeQR) Generate(code string) (string, error) {
	return f.path, nil
}

type fakeNotifier struct{ calls int }

func (f *fakeNotifier) NotifyCertificate(ctx context.Context, student *models.Student, certificateURL string) {
	f.calls++
}

func testStudent(id int64) *models.Student {
	end := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	return &models.Student{
		ID:      id,
		Code:    "ALU-2024-000001",
		Name:    "Maria da Silva",
		Email:   "maria@example.com",
		EndDate: &end,
		Course: &models.Course{
			ID:                1,
			Name:              "Eletricista Predial",
			CertificatePhrase: "{aluno} concluiu {curso}.",
		},
		Professor:   &models.Professor{ID: 1, Name: "Prof. Carlos"},
		CourseHours: &models.CourseHours{ID: 1, Hours: 40},
	}
}

func newTestCertificateService(store *fakeStudentStore, renderer *fakeRenderer, notifier *fakeNotifier) *CertificateService {
	return NewCertificateService(store, renderer, &fakeQR{path: "/tmp/qr.png"}, notifier, "http://test")
}

func TestGenerateRendersAndPersists(t *testing.T) {
	st := testStudent(1)
	store := &fakeStudentStore{students: map[int64]*models.Student{1: st}}
	renderer := &fakeRenderer{}
	notifier := &fakeNotifier{}
	svc := newTestCertificateService(store, renderer, notifier)

	resp, err := svc.Generate(context.Background(), 1, false)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if resp.StudentID != 1 || resp.Path != "/tmp/certs/out.jpg" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if len(store.setCalls) != 1 {
		t.Errorf("SetCertificate called %d times, want 1", len(store.setCalls))
	}
	if notifier.calls != 1 {
		t.Errorf("notifier called %d times, want 1", notifier.calls)
	}

	if len(renderer.calls) != 1 {
		t.Fatalf("renderer called %d times, want 1", len(renderer.calls))
	}
	data := renderer.calls[0]
	if data.Phrase != "Maria da Silva concluiu Eletricista Predial." {
		t.Errorf("rendered phrase = %q", data.Phrase)
	}
	if data.Hours != 40 || data.ProfessorName != "Prof. Carlos" {
		t.Errorf("unexpected render data: %+v", data)
	}
	if data.QRPath != "/tmp/qr.png" {
		t.Errorf("QRPath = %q", data.QRPath)
	}
}

func TestGenerateRejectsAlreadyCertified(t *testing.T) {
	st := testStudent(1)
	path := "/tmp/certs/old.jpg"
	st.CertificateGenerated = true
	st.CertificatePath = &path

	store := &fakeStudentStore{students: map[int64]*models.Student{1: st}}
	svc := newTestCertificateService(store, &fakeRenderer{}, &fakeNotifier{})

	_, err := svc.Generate(context.Background(), 1, false)
	if !errors.Is(err, apperrors.ErrCertificateAlreadyGenerated) {
		t.Errorf("Generate error = %v, want ErrCertificateAlreadyGenerated", err)
	}
}

func TestGenerateForceReplacesCertificate(t *testing.T) {
	st := testStudent(1)
	path := "/tmp/certs/old.jpg"
	st.CertificateGenerated = true
	st.CertificatePath = &path

	store := &fakeStudentStore{students: map[int64]*models.Student{1: st}}
	svc := newTestCertificateService(store, &fakeRenderer{}, &fakeNotifier{})

	if _, err := svc.Generate(context.Background(), 1, true); err != nil {
		t.Fatalf("forced Generate returned error: %v", err)
	}
	if len(store.setCalls) != 1 {
		t.Errorf("SetCertificate called %d times, want 1", len(store.setCalls))
	}
}

func TestGenerateMissingRelationsFails(t *testing.T) {
	st := testStudent(1)
	st.Professor = nil

	store := &fakeStudentStore{students: map[int64]*models.Student{1: st}}
	svc := newTestCertificateService(store, &fakeRenderer{}, &fakeNotifier{})

	if _, err := svc.Generate(context.Background(), 1, false); err == nil {
		t.Error("Generate succeeded with missing professor relation")
	}
}

func TestGenerateBatchTalliesOutcomes(t *testing.T) {
	certified := testStudent(2)
	oldPath := "/tmp/certs/done.jpg"
	certified.CertificateGenerated = true
	certified.CertificatePath = &oldPath

	broken := testStudent(3)
	broken.Course = nil

	store := &fakeStudentStore{students: map[int64]*models.Student{
		1: testStudent(1),
		2: certified,
		3: broken,
	}}
	renderer := &fakeRenderer{}
	svc := newTestCertificateService(store, renderer, &fakeNotifier{})

	// Student 99 does not exist
	result, err := svc.GenerateBatch(context.Background(), dto.GenerateBatchRequest{
		StudentIDs: []int64{1, 2, 3, 99},
	})
	if err != nil {
		t.Fatalf("GenerateBatch returned error: %v", err)
	}

	if result.Generated != 1 {
		t.Errorf("Generated = %d, want 1", result.Generated)
	}
	if result.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", result.Skipped)
	}
	if result.Failed != 2 {
		t.Errorf("Failed = %d, want 2", result.Failed)
	}

	// The batch loader must hand the renderer fully related students,
	// not bare rows.
	if len(renderer.calls) != 1 {
		t.Fatalf("renderer calls = %d, want 1", len(renderer.calls))
	}
	data := renderer.calls[0]
	if data.StudentID != 1 {
		t.Errorf("rendered student = %d, want 1", data.StudentID)
	}
	if data.Phrase != "Maria da Silva concluiu Eletricista Predial." {
		t.Errorf("Phrase = %q, course relation not applied", data.Phrase)
	}
	if data.Hours != 40 {
		t.Errorf("Hours = %d, want 40", data.Hours)
	}
	if data.ProfessorName != "Prof. Carlos" {
		t.Errorf("ProfessorName = %q, professor relation not applied", data.ProfessorName)
	}
}

func TestDeleteWithoutCertificate(t *testing.T) {
	store := &fakeStudentStore{students: map[int64]*models.Student{1: testStudent(1)}}
	svc := newTestCertificateService(store, &fakeRenderer{}, &fakeNotifier{})

	err := svc.Delete(context.Background(), 1)
	if !errors.Is(err, apperrors.ErrCertificateNotGenerated) {
		t.Errorf("Delete error = %v, want ErrCertificateNotGenerated", err)
	}
	if len(store.clearCalls) != 0 {
		t.Error("ClearCertificate should not run for uncertified students")
	}
}

func TestDeleteClearsCertificate(t *testing.T) {
	st := testStudent(1)
	path := "/tmp/certs/gone.jpg"
	st.CertificateGenerated = true
	st.CertificatePath = &path

	store := &fakeStudentStore{students: map[int64]*models.Student{1: st}}
	svc := newTestCertificateService(store, &fakeRenderer{}, &fakeNotifier{})

	if err := svc.Delete(context.Background(), 1); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if len(store.clearCalls) != 1 {
		t.Errorf("ClearCertificate called %d times, want 1", len(store.clearCalls))
	}
}

func TestVerifyOmitsContactData(t *testing.T) {
	st := testStudent(1)
	generatedAt := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)
	path := "/tmp/certs/ok.jpg"
	st.CertificateGenerated = true
	st.CertificatePath = &path
	st.CertificateGeneratedAt = &generatedAt

	store := &fakeStudentStore{byCode: map[string]*models.Student{st.Code: st}}
	svc := newTestCertificateService(store, &fakeRenderer{}, &fakeNotifier{})

	resp, err := svc.Verify(context.Background(), st.Code)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}

	if !resp.Certified {
		t.Error("Certified = false, want true")
	}
	if resp.StudentName != st.Name || resp.CourseName != "Eletricista Predial" || resp.Hours != 40 {
		t.Errorf("unexpected verification payload: %+v", resp)
	}
	if resp.CompletionDate == nil || !resp.CompletionDate.Equal(*st.EndDate) {
		t.Errorf("CompletionDate = %v, want %v", resp.CompletionDate, st.EndDate)
	}
}

func TestVerifyUnknownCode(t *testing.T) {
	store := &fakeStudentStore{byCode: map[string]*models.Student{}}
	svc := newTestCertificateService(store, &fakeRenderer{}, &fakeNotifier{})

	_, err := svc.Verify(context.Background(), "ALU-0000-000000")
	if !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Errorf("Verify error = %v, want ErrStudentNotFound", err)
	}
}

func TestCertificateURL(t *testing.T) {
	svc := newTestCertificateService(&fakeStudentStore{}, &fakeRenderer{}, &fakeNotifier{})

	got := svc.CertificateURL("/var/data/uploads/certificados/1_maria_1718000000.jpg")
	want := "http://test/uploads/certificados/1_maria_1718000000.jpg"
	if got != want {
		t.Errorf("CertificateURL = %q, want %q", got, want)
	}
}
