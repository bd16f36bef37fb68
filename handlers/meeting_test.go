package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"

	"meetbridge/models"
	"meetbridge/services/auth"
	"meetbridge/services/calendar"
)

type fakeSchedulingService struct {
	availableFn func(ctx context.Context, date string) ([]string, error)
	createFn    func(ctx context.Context, req models.BookingRequest) (*gcal.Event, error)
}

func (f *fakeSchedulingService) AvailableSlots(ctx context.Context, date string) ([]string, error) {
	if f.availableFn == nil {
		panic("AvailableSlots not configured")
	}
	return f.availableFn(ctx, date)
}

func (f *fakeSchedulingService) CreateMeeting(ctx context.Context, req models.BookingRequest) (*gcal.Event, error) {
	if f.createFn == nil {
		panic("CreateMeeting not configured")
	}
	return f.createFn(ctx, req)
}

func newTestRouter(svc calendar.SchedulingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewSchedulingHandler(svc, zap.NewNop())
	r := gin.New()
	r.GET("/gmeet-api/available-slots", h.AvailableSlotsHandler)
	r.POST("/gmeet-api/create-meeting", h.CreateMeetingHandler)
	return r
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateMeetingHandler_InvalidSlotReturns404(t *testing.T) {
	var createCalls int
	svc := &fakeSchedulingService{
		createFn: func(ctx context.Context, req models.BookingRequest) (*gcal.Event, error) {
			createCalls++
			if req.Timetable != "11:00" {
				t.Errorf("timetable = %q", req.Timetable)
			}
			return nil, calendar.ErrInvalidTimeSlot
		},
	}
	r := newTestRouter(svc)

	w := postForm(r, "/gmeet-api/create-meeting", url.Values{
		"selectedDate": {"15/01/2026"},
		"timetable":    {"11:00"},
		"email":        {"guest@example.com"},
	})

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["message"] != "No correct time slot selected" {
		t.Errorf("message = %q", body["message"])
	}
	if createCalls != 1 {
		t.Errorf("createCalls = %d, want 1", createCalls)
	}
}

func TestCreateMeetingHandler_Success(t *testing.T) {
	svc := &fakeSchedulingService{
		createFn: func(ctx context.Context, req models.BookingRequest) (*gcal.Event, error) {
			if req.Email != "guest@example.com" || req.Message != "hello" {
				t.Errorf("bound request = %+v", req)
			}
			return &gcal.Event{Id: "evt-1", Summary: "Call with guest@example.com"}, nil
		},
	}
	r := newTestRouter(svc)

	w := postForm(r, "/gmeet-api/create-meeting", url.Values{
		"selectedDate": {"15/01/2026"},
		"timetable":    {"08:00"},
		"email":        {"guest@example.com"},
		"message":      {"hello"},
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", w.Code, w.Body.String())
	}
	var body struct {
		Message string      `json:"message"`
		Data    *gcal.Event `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Message != "Meeting created successfully" {
		t.Errorf("message = %q", body.Message)
	}
	if body.Data == nil || body.Data.Id != "evt-1" {
		t.Errorf("data = %+v", body.Data)
	}
}

func TestAvailableSlotsHandler_Success(t *testing.T) {
	svc := &fakeSchedulingService{
		availableFn: func(ctx context.Context, date string) ([]string, error) {
			if date != "15/01/2026" {
				t.Errorf("date = %q", date)
			}
			return []string{"08:00", "09:40"}, nil
		},
	}
	r := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/gmeet-api/available-slots?date=15%2F01%2F2026", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body models.AvailableSlotsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.AvailableSlots) != 2 || body.AvailableSlots[0] != "08:00" {
		t.Errorf("availableSlots = %v", body.AvailableSlots)
	}
}

func TestAvailableSlotsHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "malformed date is a client error",
			err:        fmt.Errorf("%w: bad input", calendar.ErrInvalidDate),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "token issuance failure is a bad gateway",
			err:        fmt.Errorf("%w: key rejected", auth.ErrTokenExchange),
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "calendar API status is propagated",
			err:        fmt.Errorf("list events: %w", &googleapi.Error{Code: http.StatusForbidden, Body: `{"error":"forbidden"}`}),
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "unknown upstream failure is a bad gateway",
			err:        fmt.Errorf("connection reset"),
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeSchedulingService{
				availableFn: func(ctx context.Context, date string) ([]string, error) {
					return nil, tc.err
				},
			}
			r := newTestRouter(svc)

			req := httptest.NewRequest(http.MethodGet, "/gmeet-api/available-slots?date=x", nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tc.wantStatus, w.Body.String())
			}
		})
	}
}
