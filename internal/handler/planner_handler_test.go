package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unicourse/planner-api/internal/dto"
	appErrors "github.com/unicourse/planner-api/pkg/errors"
	"github.com/unicourse/planner-api/pkg/response"
)

type plannerServiceMock struct {
	resp *dto.GeneratePlansResponse
	err  error
	got  dto.GeneratePlansRequest
}

func (m *plannerServiceMock) GeneratePlans(ctx context.Context, req dto.GeneratePlansRequest) (*dto.GeneratePlansResponse, error) {
	m.got = req
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

func postJSON(t *testing.T, target string, payload interface{}) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return w, c
}

func TestPlannerHandlerGenerate(t *testing.T) {
	mock := &plannerServiceMock{resp: &dto.GeneratePlansResponse{
		Plans: []dto.PlanItem{{Term1Count: 1}},
		Stats: dto.GenerationStats{TotalPlans: 1},
	}}
	h := NewPlannerHandler(mock)

	w, c := postJSON(t, "/plans/generate", dto.GeneratePlansRequest{
		DatasetID: "ds-1",
		Term1:     "Sem 1",
		Courses:   []dto.SelectedCourseRequest{{Code: "COMP1001", Sections: []string{"1A"}}},
	})
	h.Generate(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ds-1", mock.got.DatasetID)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.NotNil(t, envelope.Data)
}

func TestPlannerHandlerGenerateBadBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewPlannerHandler(&plannerServiceMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/plans/generate", bytes.NewReader([]byte("not json")))
	c.Request = req

	h.Generate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlannerHandlerGenerateEngineRejection(t *testing.T) {
	mock := &plannerServiceMock{err: appErrors.ErrCapacityExceeded}
	h := NewPlannerHandler(mock)

	w, c := postJSON(t, "/plans/generate", dto.GeneratePlansRequest{DatasetID: "ds-1"})
	h.Generate(c)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, appErrors.ErrCapacityExceeded.Code, envelope.Error.Code)
}

func TestPlannerHandlerEmptyPlansIsSuccess(t *testing.T) {
	mock := &plannerServiceMock{resp: &dto.GeneratePlansResponse{Plans: []dto.PlanItem{}}}
	h := NewPlannerHandler(mock)

	w, c := postJSON(t, "/plans/generate", dto.GeneratePlansRequest{DatasetID: "ds-1"})
	h.Generate(c)

	assert.Equal(t, http.StatusOK, w.Code)
}
