package usecases_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"localtrade.backend/internal/domain/entities"
	domainerrors "localtrade.backend/internal/domain/errors"
	"localtrade.backend/internal/usecases"
)

type dealMocks struct {
	deals  *MockDealRepository
	offers *MockOfferRepository
	uow    *MockUnitOfWork
}

func newDealUsecase() (*usecases.DealUsecase, dealMocks) {
	m := dealMocks{
		deals:  new(MockDealRepository),
		offers: new(MockOfferRepository),
		uow:    new(MockUnitOfWork),
	}
	m.uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	return usecases.NewDealUsecase(m.deals, m.offers, m.uow), m
}

func dealInput(offerID uuid.UUID, amount string) *entities.CreateDealInput {
	return &entities.CreateDealInput{OfferID: offerID.String(), Amount: decPtr(amount)}
}

func TestDealUsecase_Create_SellOfferMakesCallerBuyer(t *testing.T) {
	uc, m := newDealUsecase()
	owner, caller := uuid.New(), uuid.New()
	offer := newOffer(owner)
	dealID := uuid.New()

	m.offers.On("GetByID", mock.Anything, offer.ID).Return(offer, nil).Once()
	m.deals.On("Create", mock.Anything, mock.MatchedBy(func(d *entities.Deal) bool {
		return d.SellerID == owner && d.BuyerID == caller && d.Status == entities.DealStatusActive
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entities.Deal).ID = dealID
	}).Return(nil).Once()
	m.deals.On("GetByID", mock.Anything, dealID).Return(&entities.Deal{ID: dealID, BuyerID: caller, SellerID: owner}, nil).Once()

	deal, err := uc.Create(context.Background(), caller, dealInput(offer.ID, "250"))
	require.NoError(t, err)
	assert.Equal(t, dealID, deal.ID)
	m.deals.AssertExpectations(t)
}

func TestDealUsecase_Create_BuyOfferMakesCallerSeller(t *testing.T) {
	uc, m := newDealUsecase()
	owner, caller := uuid.New(), uuid.New()
	offer := newOffer(owner)
	offer.Type = entities.OfferTypeBuy

	m.offers.On("GetByID", mock.Anything, offer.ID).Return(offer, nil).Once()
	m.deals.On("Create", mock.Anything, mock.MatchedBy(func(d *entities.Deal) bool {
		return d.BuyerID == owner && d.SellerID == caller
	})).Return(nil).Once()
	m.deals.On("GetByID", mock.Anything, mock.Anything).Return(&entities.Deal{}, nil).Once()

	_, err := uc.Create(context.Background(), caller, dealInput(offer.ID, "100"))
	require.NoError(t, err)
	m.deals.AssertExpectations(t)
}

func TestDealUsecase_Create_Rejections(t *testing.T) {
	owner := uuid.New()

	tests := []struct {
		name    string
		caller  uuid.UUID
		amount  string
		mutate  func(o *entities.Offer)
		status  int
		message string
	}{
		{"own offer", owner, "200", nil, http.StatusBadRequest, "Cannot create a deal on your own offer"},
		{"inactive", uuid.New(), "200", func(o *entities.Offer) { o.IsActive = false }, http.StatusBadRequest, "Offer is not active"},
		{"below min", uuid.New(), "99.99", nil, http.StatusBadRequest, "Amount must be between 100 and 500"},
		{"above max", uuid.New(), "500.01", nil, http.StatusBadRequest, "Amount must be between 100 and 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, m := newDealUsecase()
			offer := newOffer(owner)
			if tt.mutate != nil {
				tt.mutate(offer)
			}
			m.offers.On("GetByID", mock.Anything, offer.ID).Return(offer, nil).Once()

			_, err := uc.Create(context.Background(), tt.caller, dealInput(offer.ID, tt.amount))
			requireAppError(t, err, tt.status, tt.message)
			m.deals.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestDealUsecase_Create_InputErrors(t *testing.T) {
	uc, m := newDealUsecase()

	_, err := uc.Create(context.Background(), uuid.New(), &entities.CreateDealInput{OfferID: "nope", Amount: decPtr("1")})
	requireAppError(t, err, http.StatusBadRequest, "Invalid offer id")

	_, err = uc.Create(context.Background(), uuid.New(), dealInput(uuid.New(), "0"))
	requireAppError(t, err, http.StatusBadRequest, "Amount must be positive")

	badHash := "0x1234"
	in := dealInput(uuid.New(), "10")
	in.BaseChainTxHash = &badHash
	_, err = uc.Create(context.Background(), uuid.New(), in)
	requireAppError(t, err, http.StatusBadRequest, "Invalid transaction hash")

	m.offers.On("GetByID", mock.Anything, mock.Anything).Return(nil, domainerrors.ErrNotFound).Once()
	_, err = uc.Create(context.Background(), uuid.New(), dealInput(uuid.New(), "10"))
	requireAppError(t, err, http.StatusNotFound, "Offer not found")
}

func TestDealUsecase_Get(t *testing.T) {
	uc, m := newDealUsecase()
	buyer, seller := uuid.New(), uuid.New()
	deal := &entities.Deal{ID: uuid.New(), BuyerID: buyer, SellerID: seller}

	m.deals.On("GetByID", mock.Anything, deal.ID).Return(deal, nil)

	got, err := uc.Get(context.Background(), deal.ID, seller)
	require.NoError(t, err)
	assert.Equal(t, deal.ID, got.ID)

	_, err = uc.Get(context.Background(), deal.ID, uuid.New())
	requireAppError(t, err, http.StatusForbidden, "Unauthorized")

	m.deals.On("GetByID", mock.Anything, mock.Anything).Return(nil, domainerrors.ErrNotFound)
	_, err = uc.Get(context.Background(), uuid.New(), buyer)
	requireAppError(t, err, http.StatusNotFound, "Deal not found")
}

func TestDealUsecase_List(t *testing.T) {
	uc, m := newDealUsecase()
	user := uuid.New()
	completed := entities.DealStatusCompleted

	m.deals.On("ListByParticipant", mock.Anything, user, &completed).Return([]*entities.Deal{{ID: uuid.New()}}, nil).Once()

	deals, err := uc.List(context.Background(), user, &completed)
	require.NoError(t, err)
	assert.Len(t, deals, 1)

	bogus := entities.DealStatus("bogus")
	_, err = uc.List(context.Background(), user, &bogus)
	requireAppError(t, err, http.StatusBadRequest, "Invalid deal status")
}

func TestDealUsecase_Update_Complete(t *testing.T) {
	uc, m := newDealUsecase()
	buyer := uuid.New()
	deal := &entities.Deal{ID: uuid.New(), BuyerID: buyer, SellerID: uuid.New(), Status: entities.DealStatusActive}
	completed := entities.DealStatusCompleted
	notes := "met at the station"

	m.deals.On("GetByID", mock.Anything, deal.ID).Return(deal, nil).Twice()
	m.deals.On("Update", mock.Anything, mock.MatchedBy(func(d *entities.Deal) bool {
		return d.Status == entities.DealStatusCompleted && d.CompletedAt.Valid && d.Notes.String == notes
	}), buyer, entities.DealStatusActive).Return(nil).Once()

	got, err := uc.Update(context.Background(), deal.ID, buyer, &entities.UpdateDealInput{Status: &completed, Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, entities.DealStatusCompleted, got.Status)
	m.deals.AssertExpectations(t)
}

func TestDealUsecase_Update_TerminalRejected(t *testing.T) {
	uc, m := newDealUsecase()
	buyer := uuid.New()
	deal := &entities.Deal{ID: uuid.New(), BuyerID: buyer, SellerID: uuid.New(), Status: entities.DealStatusCancelled}
	completed := entities.DealStatusCompleted

	m.deals.On("GetByID", mock.Anything, deal.ID).Return(deal, nil).Once()

	_, err := uc.Update(context.Background(), deal.ID, buyer, &entities.UpdateDealInput{Status: &completed})
	requireAppError(t, err, http.StatusBadRequest, "deal is already cancelled and cannot become completed")
	m.deals.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDealUsecase_Update_NonParticipant(t *testing.T) {
	uc, m := newDealUsecase()
	deal := &entities.Deal{ID: uuid.New(), BuyerID: uuid.New(), SellerID: uuid.New(), Status: entities.DealStatusActive}
	notes := "x"

	m.deals.On("GetByID", mock.Anything, deal.ID).Return(deal, nil).Once()

	_, err := uc.Update(context.Background(), deal.ID, uuid.New(), &entities.UpdateDealInput{Notes: &notes})
	requireAppError(t, err, http.StatusNotFound, "Deal not found")
}

func TestDealUsecase_Update_ConcurrentTransitionRejected(t *testing.T) {
	uc, m := newDealUsecase()
	seller := uuid.New()
	deal := &entities.Deal{ID: uuid.New(), BuyerID: uuid.New(), SellerID: seller, Status: entities.DealStatusActive}
	cancelled := entities.DealStatusCancelled

	m.deals.On("GetByID", mock.Anything, deal.ID).Return(deal, nil).Once()
	m.deals.On("Update", mock.Anything, mock.Anything, seller, entities.DealStatusActive).
		Return(domainerrors.ErrInvalidTransition).Once()

	_, err := uc.Update(context.Background(), deal.ID, seller, &entities.UpdateDealInput{Status: &cancelled})
	requireAppError(t, err, http.StatusBadRequest, "Deal was changed by the other participant, reload and retry")
	m.deals.AssertExpectations(t)
}
