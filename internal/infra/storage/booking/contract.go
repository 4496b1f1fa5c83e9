package booking

import (
	"context"
	"database/sql"

	"github.com/m04kA/tutor-booking-service/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor

// DB соединение, умеющее выполнять запросы и открывать транзакции (*dbmetrics.DB)
type DB interface {
	DBExecutor
	BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error)
}
