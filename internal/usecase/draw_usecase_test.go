package usecase

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/zolovio/Classy-backend/internal/domain/model"
	repo "github.com/zolovio/Classy-backend/internal/repository"
)

type drawFixture struct {
	uc        *DrawUsecase
	draws     *DrawRepoMock
	campaigns *CampaignRepoMock
	coupons   *CouponRepoMock
	prizes    *PrizeRepoMock
	users     *UserRepoMock
}

func newDrawFixture() *drawFixture {
	tx := newFakeTxManager()
	draws := new(DrawRepoMock)
	campaigns := new(CampaignRepoMock)
	coupons := new(CouponRepoMock)
	prizes := new(PrizeRepoMock)
	users := new(UserRepoMock)

	return &drawFixture{
		uc:        NewDrawUsecase(tx, draws, campaigns, coupons, prizes, users, zap.NewNop()),
		draws:     draws,
		campaigns: campaigns,
		coupons:   coupons,
		prizes:    prizes,
		users:     users,
	}
}

// 受付中（end_date >= now）の抽選ウィンドウ。
func openWindow() (*time.Time, *time.Time) {
	start := time.Now().Add(-4 * 24 * time.Hour)
	end := time.Now().Add(3 * 24 * time.Hour)
	return &start, &end
}

func TestDrawUsecase_ResolveDraws_ResolvesAllOpen(t *testing.T) {
	f := newDrawFixture()
	ctx := context.Background()

	s1, e1 := openWindow()
	s2, e2 := openWindow()
	s3, e3 := openWindow()

	f.draws.On("ListEligible", ctx).Return([]model.Draw{
		{ID: 1, CampaignID: 10, StartDate: s1, EndDate: e1},
		{ID: 2, CampaignID: 11, StartDate: s2, EndDate: e2},
		{ID: 3, CampaignID: 12, StartDate: s3, EndDate: e3},
	}, nil)

	f.coupons.On("ListHolderIDsByCampaign", ctx, int64(10)).Return([]int64{7}, nil)
	f.coupons.On("ListHolderIDsByCampaign", ctx, int64(11)).Return([]int64{8, 9}, nil)
	f.coupons.On("ListHolderIDsByCampaign", ctx, int64(12)).Return([]int64{5}, nil)

	f.draws.On("SetWinnerIfUnset", ctx, int64(1), int64(7)).Return(true, nil)
	f.draws.On("SetWinnerIfUnset", ctx, int64(2), mock.AnythingOfType("int64")).Return(true, nil)
	f.draws.On("SetWinnerIfUnset", ctx, int64(3), int64(5)).Return(true, nil)

	err := f.uc.ResolveDraws(ctx)

	assert.NoError(t, err)
	f.draws.AssertNumberOfCalls(t, "SetWinnerIfUnset", 3)
}

func TestDrawUsecase_ResolveDraws_SkipsExpiredAndEmpty(t *testing.T) {
	f := newDrawFixture()
	ctx := context.Background()

	past := time.Now().Add(-time.Hour)
	start := time.Now().Add(-8 * 24 * time.Hour)
	s2, e2 := openWindow()

	f.draws.On("ListEligible", ctx).Return([]model.Draw{
		{ID: 1, CampaignID: 10, StartDate: &start, EndDate: &past}, // 受付終了
		{ID: 2, CampaignID: 11, StartDate: s2, EndDate: e2},        // 参加者ゼロ
		{ID: 3, CampaignID: 12, StartDate: &start},                 // end_date未設定
	}, nil)

	f.coupons.On("ListHolderIDsByCampaign", ctx, int64(11)).Return([]int64{}, nil)

	err := f.uc.ResolveDraws(ctx)

	assert.NoError(t, err)
	f.draws.AssertNotCalled(t, "SetWinnerIfUnset", mock.Anything, mock.Anything, mock.Anything)
}

func TestDrawUsecase_ResolveDraws_LostCASIsNotAnError(t *testing.T) {
	f := newDrawFixture()
	ctx := context.Background()

	s1, e1 := openWindow()
	f.draws.On("ListEligible", ctx).Return([]model.Draw{
		{ID: 1, CampaignID: 10, StartDate: s1, EndDate: e1},
	}, nil)
	f.coupons.On("ListHolderIDsByCampaign", ctx, int64(10)).Return([]int64{7}, nil)
	// 他プロセスに先を越された
	f.draws.On("SetWinnerIfUnset", ctx, int64(1), int64(7)).Return(false, nil)

	err := f.uc.ResolveDraws(ctx)

	assert.NoError(t, err)
}

func TestDrawUsecase_UpcomingDraws_ListsOnlyOpenWindows(t *testing.T) {
	f := newDrawFixture()
	ctx := context.Background()

	past := time.Now().Add(-time.Hour)
	start := time.Now().Add(-8 * 24 * time.Hour)
	s2, e2 := openWindow()

	f.draws.On("ListEligible", ctx).Return([]model.Draw{
		{ID: 1, CampaignID: 10, StartDate: &start, EndDate: &past},
		{ID: 2, CampaignID: 11, StartDate: s2, EndDate: e2},
	}, nil)
	f.campaigns.On("FindByID", ctx, int64(11)).Return(model.Campaign{ID: 11, PrizeID: 4}, nil)
	f.prizes.On("FindByID", ctx, int64(4)).Return(model.Prize{ID: 4, Name: "prize"}, nil)

	out, err := f.uc.UpcomingDraws(ctx)

	assert.NoError(t, err)
	if assert.Len(t, out, 1) {
		assert.Equal(t, int64(2), out[0].ID)
	}
}

func TestDrawUsecase_RedeemCoupon_WinnerRedeems(t *testing.T) {
	f := newDrawFixture()
	ctx := context.Background()

	winner := int64(7)
	f.coupons.On("FindByCode", ctx, int64(7), "ABC-7000-0101-0202").Return(model.Coupon{ID: 60, UserID: 7, CampaignID: 10, Code: "ABC-7000-0101-0202"}, nil)
	f.draws.On("FindByCampaignID", ctx, int64(10)).Return(model.Draw{ID: 1, CampaignID: 10, WinnerID: &winner}, nil)
	f.coupons.On("MarkRedeemed", ctx, int64(60)).Return(nil)

	out, err := f.uc.RedeemCoupon(ctx, 7, "ABC-7000-0101-0202")

	assert.NoError(t, err)
	assert.True(t, out.IsRedeemed)
}

func TestDrawUsecase_RedeemCoupon_LoserRejected(t *testing.T) {
	f := newDrawFixture()
	ctx := context.Background()

	winner := int64(99)
	f.coupons.On("FindByCode", ctx, int64(7), "code").Return(model.Coupon{ID: 60, UserID: 7, CampaignID: 10}, nil)
	f.draws.On("FindByCampaignID", ctx, int64(10)).Return(model.Draw{ID: 1, CampaignID: 10, WinnerID: &winner}, nil)

	_, err := f.uc.RedeemCoupon(ctx, 7, "code")

	assertHTTPError(t, err, http.StatusForbidden, "did not win")
	f.coupons.AssertNotCalled(t, "MarkRedeemed", mock.Anything, mock.Anything)
}

func TestDrawUsecase_RedeemCoupon_UnresolvedDraw(t *testing.T) {
	f := newDrawFixture()
	ctx := context.Background()

	f.coupons.On("FindByCode", ctx, int64(7), "code").Return(model.Coupon{ID: 60, UserID: 7, CampaignID: 10}, nil)
	f.draws.On("FindByCampaignID", ctx, int64(10)).Return(model.Draw{ID: 1, CampaignID: 10}, nil)

	_, err := f.uc.RedeemCoupon(ctx, 7, "code")

	assertHTTPError(t, err, http.StatusConflict, "not resolved")
}

func TestDrawUsecase_RedeemCoupon_AlreadyRedeemed(t *testing.T) {
	f := newDrawFixture()
	ctx := context.Background()

	f.coupons.On("FindByCode", ctx, int64(7), "code").Return(model.Coupon{ID: 60, UserID: 7, CampaignID: 10, IsRedeemed: true}, nil)

	_, err := f.uc.RedeemCoupon(ctx, 7, "code")

	assertHTTPError(t, err, http.StatusConflict, "already redeemed")
}

func TestDrawUsecase_RedeemCoupon_NotFound(t *testing.T) {
	f := newDrawFixture()
	ctx := context.Background()

	f.coupons.On("FindByCode", ctx, int64(7), "nope").Return(model.Coupon{}, repo.ErrNotFound)

	_, err := f.uc.RedeemCoupon(ctx, 7, "nope")

	assertHTTPError(t, err, http.StatusNotFound, "coupon not found")
}
