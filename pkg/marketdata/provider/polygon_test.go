package provider

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/argo-ta/internal/types"
	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/stretchr/testify/suite"
)

// fakePolygonAPI returns an iterator over fixed aggregates.
type fakePolygonAPI struct {
	aggs   []models.Agg
	err    error
	params *models.ListAggsParams
}

func (f *fakePolygonAPI) ListAggs(_ context.Context, params *models.ListAggsParams, _ ...models.RequestOption) PolygonAggsIterator {
	f.params = params

	return &fakeAggsIterator{aggs: f.aggs, err: f.err}
}

type fakeAggsIterator struct {
	aggs  []models.Agg
	index int
	err   error
}

func (it *fakeAggsIterator) Next() bool {
	if it.index < len(it.aggs) {
		it.index++

		return true
	}

	return false
}

func (it *fakeAggsIterator) Item() models.Agg {
	return it.aggs[it.index-1]
}

func (it *fakeAggsIterator) Err() error {
	return it.err
}

type PolygonClientTestSuite struct {
	suite.Suite
	start time.Time
	end   time.Time
}

func TestPolygonClientSuite(t *testing.T) {
	suite.Run(t, new(PolygonClientTestSuite))
}

func (suite *PolygonClientTestSuite) SetupTest() {
	suite.start = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	suite.end = suite.start.Add(4 * time.Hour)
}

func (suite *PolygonClientTestSuite) aggs(count int) []models.Agg {
	aggs := make([]models.Agg, 0, count)

	for i := 0; i < count; i++ {
		price := 200 + float64(i)

		aggs = append(aggs, models.Agg{
			Open:      price,
			High:      price + 1,
			Low:       price - 1,
			Close:     price + 0.25,
			Volume:    1000,
			Timestamp: models.Millis(suite.start.Add(time.Duration(i) * time.Hour)),
		})
	}

	return aggs
}

func (suite *PolygonClientTestSuite) download(api *fakePolygonAPI, w *fakeWriter, onProgress OnDownloadProgress) (string, error) {
	client := NewPolygonClientWithAPI(api)
	if w != nil {
		client.ConfigWriter(w)
	}

	return client.Download(context.Background(), "AAPL", suite.start, suite.end, 1, models.Hour, onProgress)
}

func (suite *PolygonClientTestSuite) TestNewPolygonClient() {
	client, err := NewPolygonClient("test-api-key")
	suite.Require().NoError(err)

	polygonClient, ok := client.(*PolygonClient)
	suite.Require().True(ok)
	suite.NotNil(polygonClient.apiClient)
	suite.Nil(polygonClient.writer)

	_, err = NewPolygonClient("")
	suite.Error(err)
	suite.Equal(errors.ErrCodeMissingParameter, errors.GetCode(err))
}

func (suite *PolygonClientTestSuite) TestNewMarketDataProvider() {
	p, err := NewMarketDataProvider(ProviderPolygon, "key")
	suite.NoError(err)
	suite.IsType(&PolygonClient{}, p)

	p, err = NewMarketDataProvider(ProviderBinance, nil)
	suite.NoError(err)
	suite.IsType(&BinanceClient{}, p)

	_, err = NewMarketDataProvider(ProviderPolygon, 42)
	suite.Equal(errors.ErrCodeInvalidConfiguration, errors.GetCode(err))

	_, err = NewMarketDataProvider("yahoo", nil)
	suite.Equal(errors.ErrCodeInvalidProvider, errors.GetCode(err))
}

func (suite *PolygonClientTestSuite) TestDownloadWithoutWriter() {
	_, err := suite.download(&fakePolygonAPI{}, nil, nil)
	suite.Error(err)
	suite.Contains(err.Error(), "no writer configured")
}

func (suite *PolygonClientTestSuite) TestDownloadWriterInitializeError() {
	_, err := suite.download(&fakePolygonAPI{}, &fakeWriter{initializeErr: stderrors.New("disk full")}, nil)
	suite.Error(err)
	suite.Equal(errors.ErrCodeMarketDataWriteFailed, errors.GetCode(err))
}

func (suite *PolygonClientTestSuite) TestDownloadSuccess() {
	api := &fakePolygonAPI{aggs: suite.aggs(2)}
	w := &fakeWriter{outputPath: "aapl.parquet"}

	var progress []float64

	path, err := suite.download(api, w, func(current, total float64, _ string) {
		progress = append(progress, current/total)
	})
	suite.Require().NoError(err)
	suite.Equal("aapl.parquet", path)
	suite.Equal(1, w.finalizeCallCount)

	suite.Equal([]types.PriceRecord{
		{Time: suite.start, Open: 200, High: 201, Low: 199, Close: 200.25},
		{Time: suite.start.Add(time.Hour), Open: 201, High: 202, Low: 200, Close: 201.25},
	}, w.written)
	suite.Equal([]float64{0, 0.25}, progress)

	suite.Require().NotNil(api.params)
	suite.Equal("AAPL", api.params.Ticker)
	suite.Equal(1, api.params.Multiplier)
	suite.Equal(models.Hour, api.params.Timespan)
	suite.Equal(suite.start, time.Time(api.params.From).UTC())
	suite.Equal(suite.end, time.Time(api.params.To).UTC())
}

func (suite *PolygonClientTestSuite) TestDownloadEmptyAggs() {
	w := &fakeWriter{outputPath: "aapl.parquet"}

	path, err := suite.download(&fakePolygonAPI{}, w, nil)
	suite.NoError(err)
	suite.Equal("aapl.parquet", path)
	suite.Empty(w.written)
}

func (suite *PolygonClientTestSuite) TestDownloadIteratorError() {
	api := &fakePolygonAPI{aggs: suite.aggs(1), err: stderrors.New("unauthorized")}
	w := &fakeWriter{}

	_, err := suite.download(api, w, nil)
	suite.Error(err)
	suite.Contains(err.Error(), "unauthorized")
	suite.Equal(errors.ErrCodeMarketDataFetchFailed, errors.GetCode(err))
	suite.Equal(0, w.finalizeCallCount)
}

func (suite *PolygonClientTestSuite) TestDownloadWriteError() {
	w := &fakeWriter{writeErr: stderrors.New("disk full")}

	_, err := suite.download(&fakePolygonAPI{aggs: suite.aggs(3)}, w, nil)
	suite.Error(err)
	suite.Equal(errors.ErrCodeMarketDataWriteFailed, errors.GetCode(err))
	suite.Equal(1, w.writeCallCount)
}

func (suite *PolygonClientTestSuite) TestDownloadFinalizeError() {
	w := &fakeWriter{finalizeErr: stderrors.New("disk full")}

	_, err := suite.download(&fakePolygonAPI{aggs: suite.aggs(1)}, w, nil)
	suite.Error(err)
	suite.Contains(err.Error(), "failed to finalize writer")
}
