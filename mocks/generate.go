package mocks

//go:generate mockgen -destination=./mock_strategy.go -package=mocks github.com/rxtech-lab/argo-ta/internal/strategy Strategy,ReplenishingStrategy
//go:generate mockgen -destination=./mock_datasource.go -package=mocks github.com/rxtech-lab/argo-ta/internal/backtest/engine/engine_v1/datasource DataSource
//go:generate mockgen -destination=./mock_result_writer.go -package=mocks github.com/rxtech-lab/argo-ta/internal/backtest/engine/engine_v1/writer ResultWriter
//go:generate mockgen -destination=./mock_provider.go -package=mocks github.com/rxtech-lab/argo-ta/pkg/marketdata/provider Provider
