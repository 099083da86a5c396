package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name StatsSource --dir ../usecase --output usecase --outpkg usecasemock --filename stats_source_mock.go
