package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"autoshop_billing/internal/adapter/http/handlers/mocks"
	"autoshop_billing/internal/domain/entities"
	"autoshop_billing/internal/usecase"
	mock_interfaces "autoshop_billing/internal/usecase/interfaces/mocks"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

// paymentStack runs the handler on top of the real payment usecase so the
// charging rules are exercised end to end through HTTP.
type paymentStack struct {
	router    *gin.Engine
	payments  *mock_interfaces.MockIBillingPaymentRepository
	estimates *mock_interfaces.MockIEstimateRepository
	gateway   *mock_interfaces.MockIPaymentGateway
}

func newPaymentStack(t *testing.T, withGateway bool) paymentStack {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	s := paymentStack{
		payments:  mock_interfaces.NewMockIBillingPaymentRepository(ctrl),
		estimates: mock_interfaces.NewMockIEstimateRepository(ctrl),
		gateway:   mock_interfaces.NewMockIPaymentGateway(ctrl),
	}

	var uc *usecase.BillingPaymentUseCase
	if withGateway {
		uc = usecase.NewBillingPaymentUseCase(s.payments, s.estimates, s.gateway)
	} else {
		uc = usecase.NewBillingPaymentUseCase(s.payments, s.estimates, nil)
	}
	h := NewBillingPaymentHandler(uc)

	s.router = gin.New()
	s.router.POST("/v1/payments/:estimate_id", h.CreatePaymentByEstimateID)
	s.router.GET("/v1/payments/:estimate_id", h.GetPaymentByEstimateID)
	return s
}

func decodeBody(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("invalid response body %s: %v", raw, err)
	}
	return body
}

func TestBillingPaymentHandler_Charge(t *testing.T) {
	t.Run("amount is the estimate total whatever the client sends", func(t *testing.T) {
		s := newPaymentStack(t, true)
		s.estimates.EXPECT().GetByID(gomock.Any(), "est-1").Return(sampleEstimate(entities.EstimateStatusApproved), nil)
		s.payments.EXPECT().ListByEstimateID(gomock.Any(), "est-1").Return(nil, nil)
		s.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, body json.RawMessage) (string, string, json.RawMessage, error) {
				var req map[string]any
				if err := json.Unmarshal(body, &req); err != nil {
					t.Fatalf("gateway received invalid json: %v", err)
				}
				if req["transaction_amount"] != 155.4 {
					t.Fatalf("expected transaction_amount 155.4, got %v", req["transaction_amount"])
				}
				return "mp-77", "approved", json.RawMessage(`{"id":"mp-77","status":"approved"}`), nil
			},
		)
		s.payments.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.BillingPayment) (entities.BillingPayment, error) { return p, nil },
		)

		w := doRequest(s.router, http.MethodPost, "/v1/payments/est-1", `{"mp_payload":{"payment_method_id":"pix","transaction_amount":0.01}}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		body := decodeBody(t, w.Body.Bytes())
		if body["amount"] != "155.40" || body["status"] != "approved" || body["payment_id"] != "mp-77" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("estimate waiting for re-approval cannot be charged", func(t *testing.T) {
		s := newPaymentStack(t, true)
		s.estimates.EXPECT().GetByID(gomock.Any(), "est-1").Return(sampleEstimate(entities.EstimateStatusNeedsReapproval), nil)

		w := doRequest(s.router, http.MethodPost, "/v1/payments/est-1", `{"payment_method_id":"pix"}`)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
		if body := decodeBody(t, w.Body.Bytes()); body["code"] != "ESTIMATE_NOT_APPROVED" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("already paid estimate is not charged again", func(t *testing.T) {
		s := newPaymentStack(t, true)
		s.estimates.EXPECT().GetByID(gomock.Any(), "est-1").Return(sampleEstimate(entities.EstimateStatusApproved), nil)
		s.payments.EXPECT().ListByEstimateID(gomock.Any(), "est-1").Return([]entities.BillingPayment{
			{ID: "mp-77", EstimateID: "est-1", Amount: "155.40", Status: entities.PaymentStatusApproved},
		}, nil)

		w := doRequest(s.router, http.MethodPost, "/v1/payments/est-1", "")
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
		if body := decodeBody(t, w.Body.Bytes()); body["code"] != "ESTIMATE_ALREADY_PAID" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("no payment provider configured", func(t *testing.T) {
		s := newPaymentStack(t, false)

		w := doRequest(s.router, http.MethodPost, "/v1/payments/est-1", `{"payment_method_id":"pix"}`)
		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", w.Code)
		}
		if body := decodeBody(t, w.Body.Bytes()); body["code"] != "PAYMENT_PROVIDER_UNAVAILABLE" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("unknown estimate", func(t *testing.T) {
		s := newPaymentStack(t, true)
		s.estimates.EXPECT().GetByID(gomock.Any(), "est-9").Return(entities.Estimate{}, nil)

		w := doRequest(s.router, http.MethodPost, "/v1/payments/est-9", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("malformed body never reaches the usecase", func(t *testing.T) {
		s := newPaymentStack(t, true)
		for _, body := range []string{`{`, `{"mp_payload":null}`} {
			if w := doRequest(s.router, http.MethodPost, "/v1/payments/est-1", body); w.Code != http.StatusBadRequest {
				t.Fatalf("body %s: expected 400, got %d", body, w.Code)
			}
		}
	})

	t.Run("non-object payload", func(t *testing.T) {
		s := newPaymentStack(t, true)
		w := doRequest(s.router, http.MethodPost, "/v1/payments/est-1", `["pix"]`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestBillingPaymentHandler_LatestPayment(t *testing.T) {
	t.Run("latest attempt after a denied one", func(t *testing.T) {
		s := newPaymentStack(t, true)
		at := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
		s.payments.EXPECT().ListByEstimateID(gomock.Any(), "est-1").Return([]entities.BillingPayment{
			{ID: "mp-2", EstimateID: "est-1", Amount: "155.40", Date: at, Status: entities.PaymentStatusApproved},
			{ID: "mp-1", EstimateID: "est-1", Amount: "155.40", Date: at.Add(-time.Hour), Status: entities.PaymentStatusDenied},
		}, nil)

		w := doRequest(s.router, http.MethodGet, "/v1/payments/est-1", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if body := decodeBody(t, w.Body.Bytes()); body["payment_id"] != "mp-2" || body["status"] != "approved" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("estimate never charged", func(t *testing.T) {
		s := newPaymentStack(t, true)
		s.payments.EXPECT().ListByEstimateID(gomock.Any(), "est-1").Return(nil, nil)

		w := doRequest(s.router, http.MethodGet, "/v1/payments/est-1", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestBillingPaymentHandler_UsecaseErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIBillingPaymentUseCase(ctrl)
	h := NewBillingPaymentHandler(uc)
	r := gin.New()
	r.POST("/v1/payments/:estimate_id", h.CreatePaymentByEstimateID)

	uc.EXPECT().CreateAndApprove(gomock.Any(), "est-1", json.RawMessage(`{"payment_method_id":"pix"}`)).
		Return(entities.BillingPayment{}, usecase.ErrPaymentGatewayUnauthorized)

	w := doRequest(r, http.MethodPost, "/v1/payments/est-1", `{"mp_payload":{"payment_method_id":"pix"}}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestMapBillingPaymentError(t *testing.T) {
	cases := []struct {
		err  error
		code string
		http int
	}{
		{usecase.ErrInvalidPaymentEstimateID, "INVALID_REQUEST", http.StatusBadRequest},
		{usecase.ErrInvalidPaymentPayload, "INVALID_REQUEST", http.StatusBadRequest},
		{usecase.ErrPaymentGatewayBadRequest, "INVALID_REQUEST", http.StatusBadRequest},
		{usecase.ErrPaymentGatewayUnauthorized, "PAYMENT_PROVIDER_UNAUTHORIZED", http.StatusUnauthorized},
		{usecase.ErrPaymentGatewayNotSet, "PAYMENT_PROVIDER_UNAVAILABLE", http.StatusServiceUnavailable},
		{usecase.ErrEstimateNotFound, "ESTIMATE_NOT_FOUND", http.StatusNotFound},
		{usecase.ErrEstimateNotApproved, "ESTIMATE_NOT_APPROVED", http.StatusConflict},
		{usecase.ErrEstimateAlreadyPaid, "ESTIMATE_ALREADY_PAID", http.StatusConflict},
		{usecase.ErrBillingPaymentNotFound, "PAYMENT_NOT_FOUND", http.StatusNotFound},
		{errors.New("dynamodb timeout"), "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tc := range cases {
		got := mapBillingPaymentError(tc.err)
		if got.Code != tc.code || got.HTTPStatus != tc.http {
			t.Fatalf("%v: expected %s/%d, got %s/%d", tc.err, tc.code, tc.http, got.Code, got.HTTPStatus)
		}
	}
}
