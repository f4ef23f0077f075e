package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localtrade.backend/internal/domain/entities"
	domainerrors "localtrade.backend/internal/domain/errors"
)

type dealServiceStub struct {
	listFn   func(ctx context.Context, userID uuid.UUID, status *entities.DealStatus) ([]*entities.Deal, error)
	getFn    func(ctx context.Context, id, userID uuid.UUID) (*entities.Deal, error)
	createFn func(ctx context.Context, callerID uuid.UUID, in *entities.CreateDealInput) (*entities.Deal, error)
	updateFn func(ctx context.Context, id, callerID uuid.UUID, in *entities.UpdateDealInput) (*entities.Deal, error)
}

func (s dealServiceStub) List(ctx context.Context, userID uuid.UUID, status *entities.DealStatus) ([]*entities.Deal, error) {
	return s.listFn(ctx, userID, status)
}
func (s dealServiceStub) Get(ctx context.Context, id, userID uuid.UUID) (*entities.Deal, error) {
	return s.getFn(ctx, id, userID)
}
func (s dealServiceStub) Create(ctx context.Context, callerID uuid.UUID, in *entities.CreateDealInput) (*entities.Deal, error) {
	return s.createFn(ctx, callerID, in)
}
func (s dealServiceStub) Update(ctx context.Context, id, callerID uuid.UUID, in *entities.UpdateDealInput) (*entities.Deal, error) {
	return s.updateFn(ctx, id, callerID, in)
}

type reportServiceStub struct {
	createFn func(ctx context.Context, reporterID uuid.UUID, in *entities.CreateReportInput) (*entities.Report, error)
}

func (s reportServiceStub) Create(ctx context.Context, reporterID uuid.UUID, in *entities.CreateReportInput) (*entities.Report, error) {
	return s.createFn(ctx, reporterID, in)
}

func TestDealHandler_Routes(t *testing.T) {
	user := testUser()
	dealID := uuid.New()
	var listedStatus *entities.DealStatus

	svc := dealServiceStub{
		listFn: func(_ context.Context, userID uuid.UUID, status *entities.DealStatus) ([]*entities.Deal, error) {
			listedStatus = status
			return []*entities.Deal{{ID: dealID, BuyerID: userID}}, nil
		},
		getFn: func(_ context.Context, id, userID uuid.UUID) (*entities.Deal, error) {
			if id == dealID {
				return &entities.Deal{ID: id, BuyerID: userID}, nil
			}
			return nil, domainerrors.Forbidden("Unauthorized")
		},
		createFn: func(_ context.Context, callerID uuid.UUID, in *entities.CreateDealInput) (*entities.Deal, error) {
			if in.Amount.IntPart() > 500 {
				return nil, domainerrors.BadRequest("Amount must be between 100 and 500")
			}
			return &entities.Deal{ID: dealID, BuyerID: callerID, Amount: *in.Amount, Status: entities.DealStatusActive}, nil
		},
		updateFn: func(_ context.Context, id, callerID uuid.UUID, in *entities.UpdateDealInput) (*entities.Deal, error) {
			return &entities.Deal{ID: id, Status: *in.Status}, nil
		},
	}
	h := NewDealHandler(svc)
	r := newTestRouter()
	g := r.Group("/api/deals", withUser(user))
	g.GET("", h.ListDeals)
	g.GET("/:id", h.GetDeal)
	g.POST("", h.CreateDeal)
	g.PATCH("/:id", h.UpdateDeal)

	w := doRequest(r, http.MethodGet, "/api/deals?status=completed", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, listedStatus)
	assert.Equal(t, entities.DealStatusCompleted, *listedStatus)

	w = doRequest(r, http.MethodGet, "/api/deals/"+dealID.String(), "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = doRequest(r, http.MethodGet, "/api/deals/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Unauthorized", errorBody(t, w))

	offerID := uuid.NewString()
	w = doRequest(r, http.MethodPost, "/api/deals", `{"offerId":"`+offerID+`","amount":"250"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var deal entities.Deal
	decodeBody(t, w, &deal)
	assert.Equal(t, user.ID, deal.BuyerID)
	assert.Equal(t, "250", deal.Amount.String())

	w = doRequest(r, http.MethodPost, "/api/deals", `{"offerId":"`+offerID+`","amount":"900"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Amount must be between 100 and 500", errorBody(t, w))

	w = doRequest(r, http.MethodPost, "/api/deals", `{"offerId":"nope","amount":"250"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodPatch, "/api/deals/"+dealID.String(), `{"status":"completed"}`)
	require.Equal(t, http.StatusOK, w.Code)
	w = doRequest(r, http.MethodPatch, "/api/deals/"+dealID.String(), `{"status":"archived"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportHandler_CreateReport(t *testing.T) {
	user := testUser()
	h := NewReportHandler(reportServiceStub{createFn: func(_ context.Context, reporterID uuid.UUID, in *entities.CreateReportInput) (*entities.Report, error) {
		if in.OfferID == nil && in.UserID == nil {
			return nil, domainerrors.BadRequest("Either offerId or userId is required")
		}
		return &entities.Report{ID: uuid.New(), ReporterID: reporterID, Reason: in.Reason, Status: entities.ReportStatusPending}, nil
	}})
	r := newTestRouter()
	r.POST("/api/reports", withUser(user), h.CreateReport)

	w := doRequest(r, http.MethodPost, "/api/reports", `{"userId":"`+uuid.NewString()+`","reason":"scam","description":"no show"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var report entities.Report
	decodeBody(t, w, &report)
	assert.Equal(t, user.ID, report.ReporterID)
	assert.Equal(t, entities.ReportStatusPending, report.Status)

	w = doRequest(r, http.MethodPost, "/api/reports", `{"reason":"scam","description":"no show"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Either offerId or userId is required", errorBody(t, w))

	w = doRequest(r, http.MethodPost, "/api/reports", `{"userId":"`+uuid.NewString()+`"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
