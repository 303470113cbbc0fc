package indicator

import (
	"math"
	"testing"

	"github.com/rxtech-lab/argo-ta/internal/types"
	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type RegistryTestSuite struct {
	suite.Suite
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

func constant(value float64) Func {
	return func(in Input, _ Param) ([]float64, error) {
		out := make([]float64, in.Len())
		for i := range out {
			out[i] = value
		}

		return out, nil
	}
}

func (suite *RegistryTestSuite) TestDefaultRegistryOrder() {
	registry := NewIndicatorRegistry()
	suite.Equal(types.AllIndicatorKinds, registry.ListIndicators())
}

func (suite *RegistryTestSuite) TestRegisterIndicator() {
	registry := NewEmptyIndicatorRegistry()

	ind := New("const", constant(1))
	suite.NoError(registry.RegisterIndicator(ind))

	retrieved, err := registry.GetIndicator("const")
	suite.NoError(err)
	suite.Equal(ind, retrieved)
}

func (suite *RegistryTestSuite) TestRegisterDuplicate() {
	registry := NewIndicatorRegistry()

	err := registry.RegisterIndicator(NewSMA())
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorAlreadyExists))
}

func (suite *RegistryTestSuite) TestGetMissing() {
	registry := NewEmptyIndicatorRegistry()

	_, err := registry.GetIndicator(types.IndicatorKindSMA)
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorNotFound))
}

func (suite *RegistryTestSuite) TestRemoveIndicator() {
	registry := NewIndicatorRegistry()

	suite.NoError(registry.RemoveIndicator(types.IndicatorKindHiLo))
	suite.NotContains(registry.ListIndicators(), types.IndicatorKindHiLo)
	suite.Len(registry.ListIndicators(), len(types.AllIndicatorKinds)-1)

	err := registry.RemoveIndicator(types.IndicatorKindHiLo)
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorNotFound))
}

func (suite *RegistryTestSuite) TestComputeByLabel() {
	registry := NewIndicatorRegistry()

	column, err := registry.Compute("sma_2", pricesFromCloses(2, 4, 6))
	suite.Require().NoError(err)
	suite.Equal("sma_2", column.Label)
	suite.True(math.IsNaN(column.Values[0]))
	suite.InDelta(3.0, column.Values[1], 1e-12)
	suite.InDelta(5.0, column.Values[2], 1e-12)
}

func (suite *RegistryTestSuite) TestComputeCustomIndicator() {
	registry := NewEmptyIndicatorRegistry()
	suite.Require().NoError(registry.RegisterIndicator(New("const", constant(42))))

	column, err := registry.Compute("const_1", pricesFromCloses(1, 2))
	suite.Require().NoError(err)
	suite.Equal([]float64{42, 42}, column.Values)
}

func (suite *RegistryTestSuite) TestComputeUnknownLabelFails() {
	registry := NewIndicatorRegistry()

	_, err := registry.Compute("smaa_60", pricesFromCloses(1, 2, 3))
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorNotFound))
	suite.Contains(err.Error(), "smaa_60")
}

func (suite *RegistryTestSuite) TestComputeKeepsConfigurationErrorCode() {
	registry := NewIndicatorRegistry()

	_, err := registry.Compute("ema_1min", pricesFromCloses(1, 2, 3))
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))

	_, err = registry.Compute("ema", pricesFromCloses(1, 2, 3))
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidIndicatorLabel))
}
