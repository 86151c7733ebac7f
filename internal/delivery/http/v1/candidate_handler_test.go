package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"recroot-backend/internal/delivery/http/middleware"
	v1 "recroot-backend/internal/delivery/http/v1"
	"recroot-backend/internal/domain"
	"recroot-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCandidateUC struct {
	mock.Mock
}

func (m *MockCandidateUC) Create(ctx context.Context, c *domain.Candidate) (*domain.Candidate, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

func (m *MockCandidateUC) GetByID(ctx context.Context, id string) (*domain.Candidate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

func (m *MockCandidateUC) Update(ctx context.Context, c *domain.Candidate) (*domain.Candidate, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

func (m *MockCandidateUC) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCandidateUC) List(ctx context.Context, page, limit int) ([]domain.Candidate, int64, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Candidate), args.Get(1).(int64), args.Error(2)
}

func (m *MockCandidateUC) Search(ctx context.Context, filter domain.CandidateFilter, page, limit int) ([]domain.Candidate, int64, error) {
	args := m.Called(ctx, filter, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Candidate), args.Get(1).(int64), args.Error(2)
}

type MockUploadUC struct {
	mock.Mock
}

func (m *MockUploadUC) Upload(ctx context.Context, u *domain.ResumeUpload) (*domain.ResumeFile, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResumeFile), args.Error(1)
}

func newTestRouter(candidateUC domain.CandidateUsecase, uploadUC domain.ResumeUploadUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	api := r.Group("/api")
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(&middleware.MockResolver{
		User: domain.User{ID: "user1", Name: "Test User", Email: "test@example.com"},
	}))
	v1.NewCandidateHandler(protected, candidateUC, uploadUC)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path string, body *bytes.Buffer, contentType string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	return w, parsed
}

func TestListEnvelope(t *testing.T) {
	candidateUC := new(MockCandidateUC)
	uploadUC := new(MockUploadUC)
	r := newTestRouter(candidateUC, uploadUC)

	t.Run("Should wrap results with count and pagination", func(t *testing.T) {
		candidateUC.On("List", mock.Anything, 1, 10).Return([]domain.Candidate{
			{ID: "a"}, {ID: "b"},
		}, int64(25), nil).Once()

		w, body := doRequest(t, r, http.MethodGet, "/api/candidates", nil, "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, float64(2), body["count"])

		pagination := body["pagination"].(map[string]any)
		next := pagination["next"].(map[string]any)
		assert.Equal(t, float64(2), next["page"])
		assert.Equal(t, float64(10), next["limit"])
		assert.Nil(t, pagination["prev"])
	})

	t.Run("Should fall back to page 1 limit 10 on garbage parameters", func(t *testing.T) {
		candidateUC.On("List", mock.Anything, 1, 10).Return([]domain.Candidate{}, int64(0), nil).Once()

		w, body := doRequest(t, r, http.MethodGet, "/api/candidates?page=abc&limit=-5", nil, "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(0), body["count"])
		candidateUC.AssertExpectations(t)
	})

	t.Run("Should include prev on later pages", func(t *testing.T) {
		candidateUC.On("List", mock.Anything, 3, 5).Return([]domain.Candidate{}, int64(11), nil).Once()

		_, body := doRequest(t, r, http.MethodGet, "/api/candidates?page=3&limit=5", nil, "")

		pagination := body["pagination"].(map[string]any)
		prev := pagination["prev"].(map[string]any)
		assert.Equal(t, float64(2), prev["page"])
		// 3*5 >= 11, so there is no next page
		assert.Nil(t, pagination["next"])
	})
}

func TestSearchParamParsing(t *testing.T) {
	candidateUC := new(MockCandidateUC)
	uploadUC := new(MockUploadUC)
	r := newTestRouter(candidateUC, uploadUC)

	t.Run("Should split and trim skills, drop non-numeric experience", func(t *testing.T) {
		candidateUC.On("Search", mock.Anything, mock.MatchedBy(func(f domain.CandidateFilter) bool {
			return assert.ObjectsAreEqual([]string{"go", "sql"}, f.Skills) &&
				f.MinExperience == nil &&
				f.Query == "backend"
		}), 1, 10).Return([]domain.Candidate{}, int64(0), nil).Once()

		w, body := doRequest(t, r, http.MethodGet, "/api/candidates/search?q=backend&skills=go,%20sql%20,,&experience=abc", nil, "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(0), body["total"])
		candidateUC.AssertExpectations(t)
	})

	t.Run("Should carry numeric experience as a minimum", func(t *testing.T) {
		candidateUC.On("Search", mock.Anything, mock.MatchedBy(func(f domain.CandidateFilter) bool {
			return f.MinExperience != nil && *f.MinExperience == 5
		}), 1, 10).Return([]domain.Candidate{}, int64(0), nil).Once()

		_, _ = doRequest(t, r, http.MethodGet, "/api/candidates/search?experience=5", nil, "")
		candidateUC.AssertExpectations(t)
	})
}

func TestGetDetailsErrors(t *testing.T) {
	candidateUC := new(MockCandidateUC)
	uploadUC := new(MockUploadUC)
	r := newTestRouter(candidateUC, uploadUC)

	t.Run("Should reject malformed ids before hitting the usecase", func(t *testing.T) {
		w, body := doRequest(t, r, http.MethodGet, "/api/candidates/not-a-uuid", nil, "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Invalid ID format", body["message"])
		candidateUC.AssertNotCalled(t, "GetByID")
	})

	t.Run("Should pass through usecase status codes", func(t *testing.T) {
		id := "7b3e1f1a-46a3-4f4e-9e70-3a2a4a1c9d42"
		candidateUC.On("GetByID", mock.Anything, id).Return(nil, apperror.NotFound("No candidate found with id "+id)).Once()

		w, body := doRequest(t, r, http.MethodGet, "/api/candidates/"+id, nil, "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, false, body["success"])
	})
}

func TestDeleteEnvelope(t *testing.T) {
	candidateUC := new(MockCandidateUC)
	uploadUC := new(MockUploadUC)
	r := newTestRouter(candidateUC, uploadUC)

	id := "7b3e1f1a-46a3-4f4e-9e70-3a2a4a1c9d42"
	candidateUC.On("Delete", mock.Anything, id).Return(nil).Once()

	w, body := doRequest(t, r, http.MethodDelete, "/api/candidates/"+id, nil, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	// Delete acknowledges with an empty object, not null
	assert.Equal(t, map[string]any{}, body["data"])
}

func TestCreateStatusCode(t *testing.T) {
	candidateUC := new(MockCandidateUC)
	uploadUC := new(MockUploadUC)
	r := newTestRouter(candidateUC, uploadUC)

	t.Run("Should return 201 with the stored record", func(t *testing.T) {
		candidateUC.On("Create", mock.Anything, mock.AnythingOfType("*domain.Candidate")).Return(&domain.Candidate{
			ID:        "new-id",
			FirstName: "Ada",
		}, nil).Once()

		payload := bytes.NewBufferString(`{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com"}`)
		w, body := doRequest(t, r, http.MethodPost, "/api/candidates", payload, "application/json")

		assert.Equal(t, http.StatusCreated, w.Code)
		data := body["data"].(map[string]any)
		assert.Equal(t, "new-id", data["id"])
	})

	t.Run("Should 400 on malformed JSON", func(t *testing.T) {
		payload := bytes.NewBufferString(`{"firstName":`)
		w, body := doRequest(t, r, http.MethodPost, "/api/candidates", payload, "application/json")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, false, body["success"])
		candidateUC.AssertNotCalled(t, "Create")
	})
}

func TestUpdateMergesOverStored(t *testing.T) {
	candidateUC := new(MockCandidateUC)
	uploadUC := new(MockUploadUC)
	r := newTestRouter(candidateUC, uploadUC)

	id := "7b3e1f1a-46a3-4f4e-9e70-3a2a4a1c9d42"
	stored := &domain.Candidate{
		ID:        id,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Location:  "London",
		CreatedBy: "user1",
	}
	candidateUC.On("GetByID", mock.Anything, id).Return(stored, nil).Once()
	candidateUC.On("Update", mock.Anything, mock.MatchedBy(func(c *domain.Candidate) bool {
		// Body only changed the location; everything else keeps stored values
		return c.ID == id && c.FirstName == "Ada" && c.Location == "Cambridge" && c.CreatedBy == "user1"
	})).Return(stored, nil).Once()

	payload := bytes.NewBufferString(`{"location":"Cambridge","createdBy":"hacker_try"}`)
	w, _ := doRequest(t, r, http.MethodPut, "/api/candidates/"+id, payload, "application/json")

	assert.Equal(t, http.StatusOK, w.Code)
	candidateUC.AssertExpectations(t)
}

func TestUploadResumeHandler(t *testing.T) {
	candidateUC := new(MockCandidateUC)
	uploadUC := new(MockUploadUC)
	r := newTestRouter(candidateUC, uploadUC)

	t.Run("Should 400 when the resume field is absent", func(t *testing.T) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.Close())

		w, body := doRequest(t, r, http.MethodPost, "/api/candidates/upload-resume", &buf, mw.FormDataContentType())

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Please upload a file", body["message"])
		uploadUC.AssertNotCalled(t, "Upload")
	})

	t.Run("Should forward the file and return its stored location", func(t *testing.T) {
		uploadUC.On("Upload", mock.Anything, mock.MatchedBy(func(u *domain.ResumeUpload) bool {
			return u.FileName == "cv.pdf" && u.UploadedBy == "user1"
		})).Return(&domain.ResumeFile{
			FileName: "123-cv.pdf",
			FilePath: "/uploads/123-cv.pdf",
		}, nil).Once()

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile("resume", "cv.pdf")
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.4 test"))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		w, body := doRequest(t, r, http.MethodPost, "/api/candidates/upload-resume", &buf, mw.FormDataContentType())

		assert.Equal(t, http.StatusOK, w.Code)
		data := body["data"].(map[string]any)
		assert.Equal(t, "123-cv.pdf", data["fileName"])
		assert.Equal(t, "/uploads/123-cv.pdf", data["filePath"])
		uploadUC.AssertExpectations(t)
	})
}
