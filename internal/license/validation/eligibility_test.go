package validation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"ftf/internal/license/models"
	"ftf/internal/license/ports"
	"ftf/internal/license/ports/mocks"
	"ftf/internal/platform/config"
	id "ftf/pkg/domain"
)

type eligibilityFixture struct {
	counter  *mocks.MockRosterCounter
	registry *mocks.MockPersonRegistry
	ledger   *mocks.MockMembershipLedger
	v        *EligibilityValidator
}

func newEligibilityFixture(t *testing.T) *eligibilityFixture {
	ctrl := gomock.NewController(t)
	f := &eligibilityFixture{
		counter:  mocks.NewMockRosterCounter(ctrl),
		registry: mocks.NewMockPersonRegistry(ctrl),
		ledger:   mocks.NewMockMembershipLedger(ctrl),
	}
	f.v = NewEligibilityValidator(f.counter, f.registry, f.ledger, config.DefaultRules(), testLogger())
	return f
}

func TestDuplicateCheck(t *testing.T) {
	t.Run("active request for the same person blocks", func(t *testing.T) {
		f := newEligibilityFixture(t)
		f.counter.EXPECT().CountActiveRequests(gomock.Any(), gomock.Any()).Return(1, nil)

		req := validRequest()
		res := newResult()
		f.v.CheckDuplicate(testCtx(), req, req.Identity("TN"), res)

		assert.Equal(t, []string{MsgDuplicateRequest}, res.Errors)
	})

	t.Run("clean registry passes", func(t *testing.T) {
		f := newEligibilityFixture(t)
		f.counter.EXPECT().CountActiveRequests(gomock.Any(), gomock.Any()).Return(0, nil)

		req := validRequest()
		res := newResult()
		f.v.CheckDuplicate(testCtx(), req, req.Identity("TN"), res)

		assert.Empty(t, res.Errors)
	})

	t.Run("lookup failure blocks", func(t *testing.T) {
		f := newEligibilityFixture(t)
		f.counter.EXPECT().CountActiveRequests(gomock.Any(), gomock.Any()).Return(0, errors.New("timeout"))

		req := validRequest()
		res := newResult()
		f.v.CheckDuplicate(testCtx(), req, req.Identity("TN"), res)

		assert.Equal(t, []string{MsgDuplicateUnavailable}, res.Errors)
	})

	t.Run("only new-license requests are checked", func(t *testing.T) {
		f := newEligibilityFixture(t)

		req := validRequest()
		req.Type = models.TypeRenewal
		res := newResult()
		f.v.CheckDuplicate(testCtx(), req, req.Identity("TN"), res)

		assert.Empty(t, res.Errors)
	})
}

func TestEligibility_NewLicense(t *testing.T) {
	t.Run("unregistered person passes", func(t *testing.T) {
		f := newEligibilityFixture(t)
		f.counter.EXPECT().CountActiveRequests(gomock.Any(), gomock.Any()).Return(0, nil)
		f.registry.EXPECT().PersonExists(gomock.Any(), gomock.Any()).Return(false, nil)

		req := validRequest()
		res := newResult()
		f.v.CheckType(testCtx(), req, req.Identity("TN"), res)

		assert.Empty(t, res.Errors)
	})

	t.Run("registered person is redirected", func(t *testing.T) {
		f := newEligibilityFixture(t)
		f.counter.EXPECT().CountActiveRequests(gomock.Any(), gomock.Any()).Return(0, nil)
		f.registry.EXPECT().PersonExists(gomock.Any(), gomock.Any()).Return(true, nil)

		req := validRequest()
		res := newResult()
		f.v.CheckType(testCtx(), req, req.Identity("TN"), res)

		assert.Equal(t, []string{MsgAlreadyRegistered}, res.Errors)
	})

	t.Run("registry failure blocks", func(t *testing.T) {
		f := newEligibilityFixture(t)
		f.counter.EXPECT().CountActiveRequests(gomock.Any(), gomock.Any()).Return(0, nil)
		f.registry.EXPECT().PersonExists(gomock.Any(), gomock.Any()).Return(false, errors.New("down"))

		req := validRequest()
		res := newResult()
		f.v.CheckType(testCtx(), req, req.Identity("TN"), res)

		assert.Equal(t, []string{MsgEligibilityUnavailable}, res.Errors)
	})
}

func TestEligibility_OwnTypeGuard(t *testing.T) {
	f := newEligibilityFixture(t)
	req := validRequest()
	ident := req.Identity("TN")

	f.counter.EXPECT().CountActiveRequests(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, filter ports.RosterFilter) (int, error) {
			assert.Equal(t, req.Type, filter.LicenseType)
			assert.Equal(t, req.TeamID, filter.TeamID)
			require.NotNil(t, filter.Identity)
			return 1, nil
		})

	res := newResult()
	f.v.CheckType(testCtx(), req, ident, res)

	assert.Equal(t, []string{MsgOwnTypeActive}, res.Errors)
}

func TestEligibility_Renewal(t *testing.T) {
	renewalReq := func() *models.LicenseRequest {
		req := validRequest()
		req.Type = models.TypeRenewal
		return req
	}

	t.Run("past non-loan membership qualifies", func(t *testing.T) {
		f := newEligibilityFixture(t)
		f.counter.EXPECT().CountActiveRequests(gomock.Any(), gomock.Any()).Return(0, nil)
		f.registry.EXPECT().PersonExists(gomock.Any(), gomock.Any()).Return(true, nil)
		f.ledger.EXPECT().MembershipExists(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, q ports.MembershipQuery, _ models.Identity) (bool, error) {
				assert.Equal(t, []models.LicenseType{models.TypeLoan, models.TypeLoanReturn}, q.ExcludeTypes)
				assert.NotContains(t, q.Seasons, id.Season("2024-2025"))
				return true, nil
			})

		req := renewalReq()
		res := newResult()
		f.v.CheckType(testCtx(), req, req.Identity("TN"), res)

		assert.Empty(t, res.Errors)
	})

	t.Run("transfer membership in the target season qualifies", func(t *testing.T) {
		f := newEligibilityFixture(t)
		f.counter.EXPECT().CountActiveRequests(gomock.Any(), gomock.Any()).Return(0, nil)
		f.registry.EXPECT().PersonExists(gomock.Any(), gomock.Any()).Return(true, nil)
		gomock.InOrder(
			f.ledger.EXPECT().MembershipExists(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil),
			f.ledger.EXPECT().MembershipExists(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, q ports.MembershipQuery, _ models.Identity) (bool, error) {
					assert.Equal(t, []id.Season{"2024-2025"}, q.Seasons)
					assert.Equal(t, []models.LicenseType{models.TypeTransfer, models.TypeFreeAgent}, q.IncludeTypes)
					return true, nil
				}),
		)

		req := renewalReq()
		res := newResult()
		f.v.CheckType(testCtx(), req, req.Identity("TN"), res)

		assert.Empty(t, res.Errors)
	})

	t.Run("zero membership rows yields exactly one blocking error", func(t *testing.T) {
		f := newEligibilityFixture(t)
		f.counter.EXPECT().CountActiveRequests(gomock.Any(), gomock.Any()).Return(0, nil)
		f.registry.EXPECT().PersonExists(gomock.Any(), gomock.Any()).Return(true, nil)
		f.ledger.EXPECT().MembershipExists(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil).Times(2)

		req := renewalReq()
		res := newResult()
		f.v.CheckType(testCtx(), req, req.Identity("TN"), res)

		require.Len(t, res.Errors, 1)
		assert.Equal(t, MsgRenewalIneligible, res.Errors[0])
	})

	t.Run("unregistered person is ineligible", func(t *testing.T) {
		f := newEligibilityFixture(t)
		f.counter.EXPECT().CountActiveRequests(gomock.Any(), gomock.Any()).Return(0, nil)
		f.registry.EXPECT().PersonExists(gomock.Any(), gomock.Any()).Return(false, nil)

		req := renewalReq()
		res := newResult()
		f.v.CheckType(testCtx(), req, req.Identity("TN"), res)

		assert.Equal(t, []string{MsgRenewalIneligible}, res.Errors)
	})

	t.Run("ledger failure blocks", func(t *testing.T) {
		f := newEligibilityFixture(t)
		f.counter.EXPECT().CountActiveRequests(gomock.Any(), gomock.Any()).Return(0, nil)
		f.registry.EXPECT().PersonExists(gomock.Any(), gomock.Any()).Return(true, nil)
		f.ledger.EXPECT().MembershipExists(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, errors.New("down"))

		req := renewalReq()
		res := newResult()
		f.v.CheckType(testCtx(), req, req.Identity("TN"), res)

		assert.Equal(t, []string{MsgEligibilityUnavailable}, res.Errors)
	})
}

func TestEligibility_LoanReturn(t *testing.T) {
	t.Run("scans the four preceding seasons for a loan", func(t *testing.T) {
		f := newEligibilityFixture(t)
		f.counter.EXPECT().CountActiveRequests(gomock.Any(), gomock.Any()).Return(0, nil)
		f.registry.EXPECT().PersonExists(gomock.Any(), gomock.Any()).Return(true, nil)
		f.ledger.EXPECT().MembershipExists(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, q ports.MembershipQuery, _ models.Identity) (bool, error) {
				assert.Equal(t, []id.Season{"2020-2021", "2021-2022", "2022-2023", "2023-2024"}, q.Seasons)
				assert.Equal(t, []models.LicenseType{models.TypeLoan}, q.IncludeTypes)
				return true, nil
			})

		req := validRequest()
		req.Type = models.TypeLoanReturn
		res := newResult()
		f.v.CheckType(testCtx(), req, req.Identity("TN"), res)

		assert.Empty(t, res.Errors)
	})

	t.Run("no loan in the window is ineligible", func(t *testing.T) {
		f := newEligibilityFixture(t)
		f.counter.EXPECT().CountActiveRequests(gomock.Any(), gomock.Any()).Return(0, nil)
		f.registry.EXPECT().PersonExists(gomock.Any(), gomock.Any()).Return(true, nil)
		f.ledger.EXPECT().MembershipExists(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)

		req := validRequest()
		req.Type = models.TypeLoanReturn
		res := newResult()
		f.v.CheckType(testCtx(), req, req.Identity("TN"), res)

		assert.Equal(t, []string{MsgLoanReturnIneligible}, res.Errors)
	})
}

func TestEligibility_MutationReturn(t *testing.T) {
	mutationReq := func() *models.LicenseRequest {
		req := validRequest()
		req.Type = models.TypeMutationReturn
		return req
	}

	t.Run("active mutation with pre-mutation membership passes clean", func(t *testing.T) {
		f := newEligibilityFixture(t)
		f.counter.EXPECT().CountActiveRequests(gomock.Any(), gomock.Any()).Return(0, nil)
		f.registry.EXPECT().PersonExists(gomock.Any(), gomock.Any()).Return(true, nil)
		f.ledger.EXPECT().MembershipExists(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil).Times(2)

		req := mutationReq()
		res := newResult()
		f.v.CheckType(testCtx(), req, req.Identity("TN"), res)

		assert.Empty(t, res.Errors)
		assert.Empty(t, res.Warnings)
	})

	t.Run("missing pre-mutation membership downgrades with a warning", func(t *testing.T) {
		f := newEligibilityFixture(t)
		f.counter.EXPECT().CountActiveRequests(gomock.Any(), gomock.Any()).Return(0, nil)
		f.registry.EXPECT().PersonExists(gomock.Any(), gomock.Any()).Return(true, nil)
		gomock.InOrder(
			f.ledger.EXPECT().MembershipExists(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil),
			f.ledger.EXPECT().MembershipExists(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil),
		)

		req := mutationReq()
		res := newResult()
		f.v.CheckType(testCtx(), req, req.Identity("TN"), res)

		assert.Empty(t, res.Errors, "the request stands as an ordinary mutation")
		assert.Equal(t, []string{MsgMutationDowngrade}, res.Warnings)
	})

	t.Run("no active mutation this season is ineligible", func(t *testing.T) {
		f := newEligibilityFixture(t)
		f.counter.EXPECT().CountActiveRequests(gomock.Any(), gomock.Any()).Return(0, nil)
		f.registry.EXPECT().PersonExists(gomock.Any(), gomock.Any()).Return(true, nil)
		f.ledger.EXPECT().MembershipExists(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)

		req := mutationReq()
		res := newResult()
		f.v.CheckType(testCtx(), req, req.Identity("TN"), res)

		assert.Equal(t, []string{MsgMutationReturnIneligible}, res.Errors)
	})
}

func TestEligibility_Loan(t *testing.T) {
	loanReq := func() *models.LicenseRequest {
		req := validRequest()
		req.Type = models.TypeLoan
		return req
	}

	t.Run("registered person without an active license passes", func(t *testing.T) {
		f := newEligibilityFixture(t)
		f.counter.EXPECT().CountActiveRequests(gomock.Any(), gomock.Any()).Return(0, nil)
		f.registry.EXPECT().PersonExists(gomock.Any(), gomock.Any()).Return(true, nil)
		f.ledger.EXPECT().MembershipExists(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)

		req := loanReq()
		res := newResult()
		f.v.CheckType(testCtx(), req, req.Identity("TN"), res)

		assert.Empty(t, res.Errors)
	})

	t.Run("active license with the borrowing team blocks", func(t *testing.T) {
		f := newEligibilityFixture(t)
		f.counter.EXPECT().CountActiveRequests(gomock.Any(), gomock.Any()).Return(0, nil)
		f.registry.EXPECT().PersonExists(gomock.Any(), gomock.Any()).Return(true, nil)
		f.ledger.EXPECT().MembershipExists(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)

		req := loanReq()
		res := newResult()
		f.v.CheckType(testCtx(), req, req.Identity("TN"), res)

		assert.Equal(t, []string{MsgLoanIneligible}, res.Errors)
	})
}

func TestEligibility_TypesWithoutPolicy(t *testing.T) {
	for _, typ := range []models.LicenseType{models.TypeTransfer, models.TypeMutation, models.TypeFreeAgent} {
		t.Run(string(typ), func(t *testing.T) {
			f := newEligibilityFixture(t)

			req := validRequest()
			req.Type = typ
			res := newResult()
			f.v.CheckType(testCtx(), req, req.Identity("TN"), res)

			assert.Empty(t, res.Errors)
		})
	}
}
