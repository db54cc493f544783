package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"

	"github.com/ammarsarhan/hagz-sub001/services"
)

// buildBookingTestApp wires the booking routes with a stand-in auth middleware
// so request validation can be exercised without a database or token service.
func buildBookingTestApp() *iris.Application {
	app := iris.New()
	app.Validator = validator.New()

	booking := app.Party("/api/booking", mockUserMiddleware)
	{
		booking.Post("/", CreateBooking)
		booking.Post("/preview/price", PreviewBookingPrice)
		booking.Post("/preview/deadlines", PreviewBookingDeadlines)
	}
	if err := app.Build(); err != nil {
		panic(err)
	}
	return app
}

func mockUserMiddleware(ctx iris.Context) {
	ctx.Values().Set("userID", uint(1))
	ctx.Values().Set("userRole", "user")
	ctx.Next()
}

func postJSON(app *iris.Application, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	return resp
}

func TestCreateBookingRejectsInvalidPayload(t *testing.T) {
	app := buildBookingTestApp()

	// Missing required fields fails validation before the engine is consulted.
	resp := postJSON(app, "/api/booking", `{"note":"hello"}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty payload, got %d", resp.Code)
	}

	resp = postJSON(app, "/api/booking", `{
		"pitchID": 1, "targetType": "COURT", "targetID": 1,
		"startDate": "2025-03-12T18:00:00Z", "endDate": "2025-03-12T20:00:00Z"
	}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad target type, got %d", resp.Code)
	}
}

func TestCreateBookingRejectsInvertedRange(t *testing.T) {
	app := buildBookingTestApp()

	resp := postJSON(app, "/api/booking", `{
		"pitchID": 1, "targetType": "GROUND", "targetID": 1,
		"startDate": "2025-03-12T20:00:00Z", "endDate": "2025-03-12T18:00:00Z"
	}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for endDate before startDate, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "endDate") {
		t.Errorf("body should name the offending field, got %s", resp.Body.String())
	}
}

func TestPreviewEndpointsRejectInvalidPayload(t *testing.T) {
	app := buildBookingTestApp()

	for _, path := range []string{"/api/booking/preview/price", "/api/booking/preview/deadlines"} {
		resp := postJSON(app, path, `{"pitchID": 1}`)
		if resp.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400 for incomplete payload, got %d", path, resp.Code)
		}
	}
}

func TestRespondEngineErrorStatusMapping(t *testing.T) {
	app := iris.New()
	app.Get("/err/{kind}", func(ctx iris.Context) {
		respondEngineError(ctx, &services.BookingError{
			Kind:   ctx.Params().Get("kind"),
			Field:  "startDate",
			Detail: "test detail",
		})
	})
	if err := app.Build(); err != nil {
		t.Fatalf("build app: %v", err)
	}

	cases := []struct {
		kind string
		want int
	}{
		{services.ErrKindInvalidTarget, http.StatusNotFound},
		{services.ErrKindSlotTaken, http.StatusConflict},
		{services.ErrKindAdvanceWindowPassed, http.StatusBadRequest},
		{services.ErrKindInvalidDuration, http.StatusBadRequest},
		{services.ErrKindNoSchedule, http.StatusInternalServerError},
		{services.ErrKindPersistenceFailure, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/err/"+tc.kind, nil)
		resp := httptest.NewRecorder()
		app.ServeHTTP(resp, req)
		if resp.Code != tc.want {
			t.Errorf("%s: got %d, want %d", tc.kind, resp.Code, tc.want)
		}
	}
}
