/*
Copyright 2025 DukaRecon Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dukahq/dukarecon/internal/request"

	"github.com/alicebob/miniredis/v2"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"

	model2 "github.com/dukahq/dukarecon/api/model"

	"github.com/dukahq/dukarecon/config"
	"github.com/dukahq/dukarecon/database/mocks"
	"github.com/dukahq/dukarecon/internal/apierror"
	"github.com/dukahq/dukarecon/model"

	"github.com/dukahq/dukarecon"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type TestRequest struct {
	Payload  io.Reader
	Router   *gin.Engine
	Response interface{}
	Method   string
	Route    string
	Header   map[string]string
}

func SetUpTestRequest(s TestRequest) (*httptest.ResponseRecorder, error) {
	req := httptest.NewRequest(s.Method, s.Route, s.Payload)
	for key, value := range s.Header {
		req.Header.Set(key, value)
	}
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	s.Router.ServeHTTP(resp, req)

	if s.Response != nil {
		if err := json.NewDecoder(resp.Body).Decode(&s.Response); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

func setupRouter(t *testing.T) (*gin.Engine, *mocks.MockDataSource) {
	t.Helper()
	mr := miniredis.RunT(t)
	config.MockConfig(&config.Configuration{
		Redis: config.RedisConfig{Dns: mr.Addr()},
		Queue: config.QueueConfig{
			NotificationQueue: "new:notification",
			MaxRetryAttempts:  1,
		},
	})

	mockDS := new(mocks.MockDataSource)
	recon, err := dukarecon.NewRecon(mockDS)
	if err != nil {
		t.Fatalf("Failed to setup recon: %v", err)
	}
	return NewAPI(recon).Router(), mockDS
}

func TestIngestNotification(t *testing.T) {
	router, _ := setupRouter(t)

	tests := []struct {
		name         string
		payload      model2.RecordNotification
		expectedCode int
	}{
		{
			name: "Valid notification",
			payload: model2.RecordNotification{
				TenantID:    gofakeit.UUID(),
				SubmitterID: gofakeit.UUID(),
				Body:        "QX7P2MN8RT Confirmed. You have received Ksh1,250.00 from JANE WANJIKU 0712345678 on 2/8/25 at 3:45 PM.",
				SenderLabel: "MPESA",
			},
			expectedCode: http.StatusAccepted,
		},
		{
			name: "Missing tenant",
			payload: model2.RecordNotification{
				Body: "QX7P2MN8RT Confirmed. You have received Ksh1,250.00 from JANE WANJIKU.",
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Missing body",
			payload: model2.RecordNotification{
				TenantID: gofakeit.UUID(),
			},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payloadBytes, err := request.ToJsonReq(&tt.payload)
			assert.NoError(t, err)
			var response map[string]interface{}
			testRequest := TestRequest{
				Payload:  payloadBytes,
				Response: &response,
				Method:   "POST",
				Route:    "/notifications",
				Router:   router,
			}

			resp, err := SetUpTestRequest(testRequest)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedCode, resp.Code)
			if tt.expectedCode == http.StatusAccepted {
				assert.Equal(t, "queued", response["status"])
			}
		})
	}
}

func TestIngestNotificationDuplicateCollapses(t *testing.T) {
	router, _ := setupRouter(t)

	payload := model2.RecordNotification{
		TenantID: gofakeit.UUID(),
		Body:     "QX7P2MN8RT Confirmed. You have received Ksh1,250.00 from JANE WANJIKU 0712345678 on 2/8/25 at 3:45 PM.",
	}

	for i := 0; i < 2; i++ {
		payloadBytes, err := request.ToJsonReq(&payload)
		assert.NoError(t, err)
		resp, err := SetUpTestRequest(TestRequest{
			Payload: payloadBytes,
			Method:  "POST",
			Route:   "/notifications",
			Router:  router,
		})
		assert.NoError(t, err)
		assert.Equal(t, http.StatusAccepted, resp.Code)
	}
}

func TestRecordPayment(t *testing.T) {
	router, mockDS := setupRouter(t)

	validPayment := model2.RecordPayment{
		TenantID:      gofakeit.UUID(),
		AttendantID:   gofakeit.UUID(),
		AttendantName: gofakeit.Name(),
		Amount:        decimal.NewFromFloat(1250.00),
		PaymentMethod: "mobile-money",
		ReferenceCode: "QX7P2MN8RT",
	}

	mockDS.On("RecordPayment", mock.Anything, mock.Anything).Return(&model.RecordedPayment{
		PaymentID:     "pay_" + gofakeit.UUID(),
		TenantID:      validPayment.TenantID,
		Amount:        validPayment.Amount,
		PaymentMethod: model.MethodMobileMoney,
		ReferenceCode: validPayment.ReferenceCode,
		CreatedAt:     time.Now(),
	}, nil)
	mockDS.On("GetLedgerEntry", mock.Anything, validPayment.TenantID, validPayment.ReferenceCode).
		Return(nil, apierror.NewAPIError(apierror.ErrNotFound, "Ledger entry not found", nil))

	tests := []struct {
		name         string
		payload      model2.RecordPayment
		expectedCode int
	}{
		{
			name:         "Valid mobile money payment",
			payload:      validPayment,
			expectedCode: http.StatusCreated,
		},
		{
			name: "Unknown payment method",
			payload: model2.RecordPayment{
				TenantID:      gofakeit.UUID(),
				AttendantID:   gofakeit.UUID(),
				Amount:        decimal.NewFromFloat(500),
				PaymentMethod: "cheque",
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Zero amount",
			payload: model2.RecordPayment{
				TenantID:      gofakeit.UUID(),
				AttendantID:   gofakeit.UUID(),
				Amount:        decimal.Zero,
				PaymentMethod: "cash",
			},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payloadBytes, err := request.ToJsonReq(&tt.payload)
			assert.NoError(t, err)
			var response model.RecordedPayment
			testRequest := TestRequest{
				Payload:  payloadBytes,
				Response: &response,
				Method:   "POST",
				Route:    "/payments",
				Router:   router,
			}

			resp, err := SetUpTestRequest(testRequest)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedCode, resp.Code)
			if tt.expectedCode == http.StatusCreated {
				assert.Contains(t, response.PaymentID, "pay_")
				assert.Equal(t, tt.payload.ReferenceCode, response.ReferenceCode)
			}
		})
	}
}

func TestRecordExpenseAPI(t *testing.T) {
	router, mockDS := setupRouter(t)

	tenantID := gofakeit.UUID()
	mockDS.On("RecordExpense", mock.Anything, mock.Anything).Return(&model.Expense{
		ExpenseID:     "exp_" + gofakeit.UUID(),
		TenantID:      tenantID,
		ReferenceCode: "QX7P2MN8RT",
		Amount:        decimal.NewFromFloat(500),
	}, nil)

	tests := []struct {
		name         string
		payload      model2.RecordExpense
		expectedCode int
	}{
		{
			name: "Valid expense text",
			payload: model2.RecordExpense{
				TenantID: tenantID,
				Body:     "QX7P2MN8RT Confirmed. Ksh500.00 sent to MAMA NTILIE SUPPLIES 0798765432 on 2/8/25 at 9:10 AM.",
			},
			expectedCode: http.StatusCreated,
		},
		{
			name: "Income text rejected",
			payload: model2.RecordExpense{
				TenantID: tenantID,
				Body:     "QX7P2MN8RT Confirmed. You have received Ksh500.00 from JANE WANJIKU 0712345678 on 2/8/25 at 9:10 AM.",
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Missing body",
			payload: model2.RecordExpense{
				TenantID: tenantID,
			},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payloadBytes, err := request.ToJsonReq(&tt.payload)
			assert.NoError(t, err)
			var response model.Expense
			testRequest := TestRequest{
				Payload:  payloadBytes,
				Response: &response,
				Method:   "POST",
				Route:    "/expenses",
				Router:   router,
			}

			resp, err := SetUpTestRequest(testRequest)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedCode, resp.Code)
			if tt.expectedCode == http.StatusCreated {
				assert.Contains(t, response.ExpenseID, "exp_")
			}
		})
	}
}

func TestGetPaymentAPI(t *testing.T) {
	router, mockDS := setupRouter(t)

	paymentID := "pay_" + gofakeit.UUID()
	mockDS.On("GetPayment", mock.Anything, paymentID).Return(&model.RecordedPayment{
		PaymentID:     paymentID,
		TenantID:      gofakeit.UUID(),
		Amount:        decimal.NewFromFloat(1250),
		PaymentMethod: model.MethodMobileMoney,
		ReferenceCode: "QX7P2MN8RT",
	}, nil)

	var response model.RecordedPayment
	resp, err := SetUpTestRequest(TestRequest{
		Response: &response,
		Method:   "GET",
		Route:    fmt.Sprintf("/payments/%s", paymentID),
		Router:   router,
	})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, paymentID, response.PaymentID)
}

func TestGetExpensesAPI(t *testing.T) {
	router, mockDS := setupRouter(t)

	tenantID := gofakeit.UUID()
	mockDS.On("GetExpensesForPeriod", mock.Anything, tenantID, mock.Anything, mock.Anything).
		Return([]*model.Expense{
			{ExpenseID: "exp_1", TenantID: tenantID, ReferenceCode: "QWE8RT6Y2U", Amount: decimal.NewFromFloat(2500), Description: "Sent to JANE WAMBUI"},
		}, nil)

	var response []model.Expense
	resp, err := SetUpTestRequest(TestRequest{
		Response: &response,
		Method:   "GET",
		Route:    fmt.Sprintf("/expenses?tenant_id=%s", tenantID),
		Router:   router,
	})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Len(t, response, 1)
	assert.Equal(t, "exp_1", response[0].ExpenseID)
}

func TestGetLedgerEntryAPI(t *testing.T) {
	router, mockDS := setupRouter(t)

	entryID := "evt_" + gofakeit.UUID()
	mockDS.On("GetLedgerEntryByID", mock.Anything, entryID).Return(&model.LedgerEntry{
		EntryID:       entryID,
		TenantID:      gofakeit.UUID(),
		ReferenceCode: "QX7P2MN8RT",
		Amount:        decimal.NewFromFloat(1250),
		Status:        model.StatusUnmatched,
	}, nil)

	var response model.LedgerEntry
	resp, err := SetUpTestRequest(TestRequest{
		Response: &response,
		Method:   "GET",
		Route:    fmt.Sprintf("/ledger-entries/%s", entryID),
		Router:   router,
	})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, entryID, response.EntryID)
	assert.Equal(t, model.StatusUnmatched, response.Status)
}

func TestDismissLedgerEntryAPI(t *testing.T) {
	router, mockDS := setupRouter(t)

	entryID := "evt_" + gofakeit.UUID()
	mockDS.On("UpdateLedgerEntryStatus", mock.Anything, entryID, model.StatusDismissed).Return(nil)

	var response map[string]interface{}
	resp, err := SetUpTestRequest(TestRequest{
		Response: &response,
		Method:   "PUT",
		Route:    fmt.Sprintf("/ledger-entries/%s/dismiss", entryID),
		Router:   router,
	})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "dismissed", response["status"])
	mockDS.AssertExpectations(t)
}

func TestGetShiftReportAPI(t *testing.T) {
	router, mockDS := setupRouter(t)

	tenantID := gofakeit.UUID()
	now := time.Now()
	mockDS.On("GetPaymentsForPeriod", mock.Anything, tenantID, mock.Anything, mock.Anything).
		Return([]*model.RecordedPayment{
			{
				PaymentID:     "pay_" + gofakeit.UUID(),
				TenantID:      tenantID,
				Amount:        decimal.NewFromFloat(1250),
				PaymentMethod: model.MethodMobileMoney,
				ReferenceCode: "QX7P2MN8RT",
				CreatedAt:     now,
			},
		}, nil)
	mockDS.On("GetLedgerEntriesForPeriod", mock.Anything, tenantID, mock.Anything, mock.Anything).
		Return([]*model.LedgerEntry{
			{
				EntryID:       "evt_" + gofakeit.UUID(),
				TenantID:      tenantID,
				ReferenceCode: "QX7P2MN8RT",
				Amount:        decimal.NewFromFloat(1250),
				Channel:       model.ChannelMobileMoney,
				Status:        model.StatusUnmatched,
				ReceivedAt:    now.Add(1 * time.Minute),
			},
		}, nil)

	t.Run("Missing tenant_id", func(t *testing.T) {
		resp, err := SetUpTestRequest(TestRequest{
			Method: "GET",
			Route:  "/reconciliation",
			Router: router,
		})
		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("Bad timestamp", func(t *testing.T) {
		resp, err := SetUpTestRequest(TestRequest{
			Method: "GET",
			Route:  fmt.Sprintf("/reconciliation?tenant_id=%s&from=yesterday", tenantID),
			Router: router,
		})
		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("Full report", func(t *testing.T) {
		from := now.Add(-1 * time.Hour).Format(time.RFC3339)
		to := now.Add(1 * time.Hour).Format(time.RFC3339)
		var response dukarecon.ShiftReport
		resp, err := SetUpTestRequest(TestRequest{
			Response: &response,
			Method:   "GET",
			Route:    fmt.Sprintf("/reconciliation?tenant_id=%s&from=%s&to=%s", tenantID, from, to),
			Router:   router,
		})
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Len(t, response.Result.Matched, 1)
		assert.Empty(t, response.Result.UnmatchedPayments)
		assert.Empty(t, response.Result.UnmatchedMoney)
		assert.True(t, response.Summary.MissingAmount.IsZero())
	})
}
