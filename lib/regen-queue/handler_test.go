package regenqueue

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"timesheet-backend/models"
	dbmodels "timesheet-backend/models/db"
)

type fakeQueueStore struct {
	jobs      []dbmodels.RegenerationJob
	claimDeny map[string]bool
	completed []string
	failed    map[string]string
}

func (f *fakeQueueStore) Enqueue(validationID string) (bool, string, error) {
	return true, "job-" + validationID, nil
}

func (f *fakeQueueStore) ListPending(limit int) ([]dbmodels.RegenerationJob, error) {
	if len(f.jobs) > limit {
		return f.jobs[:limit], nil
	}
	return f.jobs, nil
}

func (f *fakeQueueStore) Claim(id string) (bool, error) {
	if f.claimDeny[id] {
		return false, nil
	}
	return true, nil
}

func (f *fakeQueueStore) MarkCompleted(id string) error {
	f.completed = append(f.completed, id)
	return nil
}

func (f *fakeQueueStore) MarkFailed(id, errorMessage string) error {
	if f.failed == nil {
		f.failed = map[string]string{}
	}
	f.failed[id] = errorMessage
	return nil
}

type fakeValidationStore struct {
	recs     map[string]*dbmodels.ValidationRequest
	pdfPaths map[string]string
}

func (f *fakeValidationStore) Create(rec dbmodels.ValidationRequest) (string, error) { return "", nil }

func (f *fakeValidationStore) GetByID(id string) (*dbmodels.ValidationRequest, error) {
	return f.recs[id], nil
}

func (f *fakeValidationStore) SetStatus(id string, status models.ValidationStatus, signature string, validatedAt time.Time) error {
	return nil
}

func (f *fakeValidationStore) SetPdfPath(id, pdfPath string) error {
	if f.pdfPaths == nil {
		f.pdfPaths = map[string]string{}
	}
	f.pdfPaths[id] = pdfPath
	return nil
}

func (f *fakeValidationStore) ListPendingOlderThan(cutoff time.Time) ([]dbmodels.ValidationRequest, error) {
	return nil, nil
}

func (f *fakeValidationStore) List(employeeID, managerID string) ([]dbmodels.ValidationRequest, error) {
	return nil, nil
}

func (f *fakeValidationStore) UpsertView(view dbmodels.ValidationView) error { return nil }

func (f *fakeValidationStore) CleanExpired() error { return nil }

type fakeStorage struct {
	objects     map[string][]byte
	uploads     map[string][]byte
	downloadErr error
}

func (f *fakeStorage) Download(ctx context.Context, path string) ([]byte, error) {
	if f.downloadErr != nil {
		return nil, f.downloadErr
	}
	return f.objects[path], nil
}

func (f *fakeStorage) Upload(ctx context.Context, path string, data []byte) error {
	if f.uploads == nil {
		f.uploads = map[string][]byte{}
	}
	f.uploads[path] = data
	return nil
}

func (f *fakeStorage) EnsureBucket(ctx context.Context) error { return nil }

type fakeCompositor struct {
	err error
}

func (f *fakeCompositor) Compose(pdfData []byte, signatureB64 string, validatedAt time.Time) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]byte("signed:"), pdfData...), nil
}

func validationRec(id, pdfPath, signature string) *dbmodels.ValidationRequest {
	rec := dbmodels.ValidationRequest{
		PeriodStart:      time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:        time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC),
		Status:           models.ValidationStatusApproved,
		ManagerSignature: signature,
		PdfPath:          pdfPath,
	}
	rec.ID = id
	return &rec
}

func TestRegenerate(t *testing.T) {
	ctx := context.TODO()

	t.Run(`happy path check`, func(t *testing.T) {
		validations := &fakeValidationStore{recs: map[string]*dbmodels.ValidationRequest{
			"v1": validationRec("v1", "timesheets/v1.pdf", "c2ln"),
		}}
		storage := &fakeStorage{objects: map[string][]byte{"timesheets/v1.pdf": []byte("pdf")}}
		handler := NewHandler(&fakeQueueStore{}, validations, storage, &fakeCompositor{})

		newPath, err := handler.Regenerate(ctx, "v1")
		require.Nil(t, err)
		require.Equal(t, "timesheets/v1_validated.pdf", newPath)
		require.Equal(t, []byte("signed:pdf"), storage.uploads[newPath])
		require.Equal(t, newPath, validations.pdfPaths["v1"])
	})

	t.Run(`unknown validation check`, func(t *testing.T) {
		handler := NewHandler(&fakeQueueStore{}, &fakeValidationStore{}, &fakeStorage{}, &fakeCompositor{})
		_, err := handler.Regenerate(ctx, "missing")
		require.Equal(t, true, errors.Is(err, models.ErrNotFound))
	})

	t.Run(`missing signature check`, func(t *testing.T) {
		validations := &fakeValidationStore{recs: map[string]*dbmodels.ValidationRequest{
			"v1": validationRec("v1", "timesheets/v1.pdf", ""),
		}}
		storage := &fakeStorage{}
		handler := NewHandler(&fakeQueueStore{}, validations, storage, &fakeCompositor{})

		_, err := handler.Regenerate(ctx, "v1")
		require.Equal(t, true, errors.Is(err, models.ErrSignatureMissing))
		// nothing must reach storage on that path
		require.Empty(t, storage.uploads)
	})

	t.Run(`download failure check`, func(t *testing.T) {
		validations := &fakeValidationStore{recs: map[string]*dbmodels.ValidationRequest{
			"v1": validationRec("v1", "timesheets/v1.pdf", "c2ln"),
		}}
		storage := &fakeStorage{downloadErr: errors.New("connection reset")}
		handler := NewHandler(&fakeQueueStore{}, validations, storage, &fakeCompositor{})

		_, err := handler.Regenerate(ctx, "v1")
		require.Equal(t, true, errors.Is(err, models.ErrDownloadFailed))
	})
}

func TestProcessQueue(t *testing.T) {
	ctx := context.TODO()

	job := func(id, validationID string) dbmodels.RegenerationJob {
		rec := dbmodels.RegenerationJob{
			ValidationID: validationID,
			Status:       dbmodels.RegenerationJobPending,
		}
		rec.ID = id
		return rec
	}

	t.Run(`all jobs reach terminal status check`, func(t *testing.T) {
		queue := &fakeQueueStore{jobs: []dbmodels.RegenerationJob{job("j1", "v1"), job("j2", "v2")}}
		validations := &fakeValidationStore{recs: map[string]*dbmodels.ValidationRequest{
			"v1": validationRec("v1", "a.pdf", "c2ln"),
			"v2": validationRec("v2", "b.pdf", "c2ln"),
		}}
		storage := &fakeStorage{objects: map[string][]byte{"a.pdf": []byte("a"), "b.pdf": []byte("b")}}
		handler := NewHandler(queue, validations, storage, &fakeCompositor{})

		result, err := handler.ProcessQueue(ctx)
		require.Nil(t, err)
		require.Equal(t, 2, result.Processed)
		require.Equal(t, []string{"j1", "j2"}, queue.completed)
		require.Empty(t, queue.failed)
	})

	t.Run(`one failure does not abort the batch check`, func(t *testing.T) {
		queue := &fakeQueueStore{jobs: []dbmodels.RegenerationJob{job("j1", "v1"), job("j2", "v2")}}
		validations := &fakeValidationStore{recs: map[string]*dbmodels.ValidationRequest{
			// v1 has no signature, v2 is fine
			"v1": validationRec("v1", "a.pdf", ""),
			"v2": validationRec("v2", "b.pdf", "c2ln"),
		}}
		storage := &fakeStorage{objects: map[string][]byte{"b.pdf": []byte("b")}}
		handler := NewHandler(queue, validations, storage, &fakeCompositor{})

		result, err := handler.ProcessQueue(ctx)
		require.Nil(t, err)
		require.Equal(t, 2, result.Processed)
		require.Equal(t, []string{"j2"}, queue.completed)
		require.Contains(t, queue.failed, "j1")
		require.Equal(t, string(dbmodels.RegenerationJobFailed), result.Results[0].Status)
		require.Equal(t, string(dbmodels.RegenerationJobCompleted), result.Results[1].Status)
	})

	t.Run(`lost claim is skipped check`, func(t *testing.T) {
		queue := &fakeQueueStore{
			jobs:      []dbmodels.RegenerationJob{job("j1", "v1"), job("j2", "v2")},
			claimDeny: map[string]bool{"j1": true},
		}
		validations := &fakeValidationStore{recs: map[string]*dbmodels.ValidationRequest{
			"v1": validationRec("v1", "a.pdf", "c2ln"),
			"v2": validationRec("v2", "b.pdf", "c2ln"),
		}}
		storage := &fakeStorage{objects: map[string][]byte{"a.pdf": []byte("a"), "b.pdf": []byte("b")}}
		handler := NewHandler(queue, validations, storage, &fakeCompositor{})

		result, err := handler.ProcessQueue(ctx)
		require.Nil(t, err)
		require.Equal(t, 1, result.Processed)
		require.Equal(t, []string{"j2"}, queue.completed)
	})

	t.Run(`empty queue check`, func(t *testing.T) {
		handler := NewHandler(&fakeQueueStore{}, &fakeValidationStore{}, &fakeStorage{}, &fakeCompositor{})
		result, err := handler.ProcessQueue(ctx)
		require.Nil(t, err)
		require.Equal(t, 0, result.Processed)
	})
}
