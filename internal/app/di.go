package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/dihow/CircuitBoardWarehouse/internal/closer"
	"github.com/dihow/CircuitBoardWarehouse/internal/config"
	"github.com/dihow/CircuitBoardWarehouse/internal/migrator"
	"github.com/dihow/CircuitBoardWarehouse/internal/notifier"
	clientrepo "github.com/dihow/CircuitBoardWarehouse/internal/repository/client"
	componentrepo "github.com/dihow/CircuitBoardWarehouse/internal/repository/component"
	employeerepo "github.com/dihow/CircuitBoardWarehouse/internal/repository/employee"
	movementrepo "github.com/dihow/CircuitBoardWarehouse/internal/repository/movement"
	orderrepo "github.com/dihow/CircuitBoardWarehouse/internal/repository/order"
	pcbrepo "github.com/dihow/CircuitBoardWarehouse/internal/repository/pcb"
	"github.com/dihow/CircuitBoardWarehouse/internal/repository/tx"
	authsvc "github.com/dihow/CircuitBoardWarehouse/internal/service/auth"
	bomsvc "github.com/dihow/CircuitBoardWarehouse/internal/service/bom"
	clientsvc "github.com/dihow/CircuitBoardWarehouse/internal/service/client"
	componentsvc "github.com/dihow/CircuitBoardWarehouse/internal/service/component"
	ledgersvc "github.com/dihow/CircuitBoardWarehouse/internal/service/ledger"
	ordersvc "github.com/dihow/CircuitBoardWarehouse/internal/service/order"
	schedulersvc "github.com/dihow/CircuitBoardWarehouse/internal/service/scheduler"
	stocksvc "github.com/dihow/CircuitBoardWarehouse/internal/service/stock"
	thttp "github.com/dihow/CircuitBoardWarehouse/internal/transport/http"
)

// ComponentRepository joins the per-consumer repository views so the DI can
// hand one instance to every service that needs it.
type ComponentRepository interface {
	componentsvc.ComponentRepository
	stocksvc.ComponentRepository
}

type PcbRepository interface {
	bomsvc.PcbRepository
	stocksvc.PcbRepository
	ordersvc.PcbRepository
}

type OrderRepository interface {
	ordersvc.OrderRepository
	schedulersvc.OrderRepository
}

type Stock interface {
	SetComponentStock(ctx context.Context, componentID, newStock int64) error
	SetPcbStock(ctx context.Context, pcbID, newTotalStock int64) error
}

type Ledger interface {
	bomsvc.Ledger
	thttp.LedgerService
}

type SchedulerService interface {
	PromoteDue(ctx context.Context) (int, error)
	Run(ctx context.Context, interval time.Duration) error
}

type di struct {
	dbPool    *pgxpool.Pool
	txManager *tx.Manager
	migr      *migrator.Migrator
	events    *notifier.Notifier

	componentRepo ComponentRepository
	pcbRepo       PcbRepository
	orderRepo     OrderRepository
	movementRepo  ledgersvc.MovementRepository
	clientRepo    clientsvc.ClientRepository
	employeeRepo  authsvc.EmployeeRepository

	ledger     Ledger
	stock      Stock
	components thttp.ComponentService
	bom        thttp.BomService
	clients    thttp.ClientService
	orders     thttp.OrderService
	auth       thttp.AuthService
	scheduler  SchedulerService
}

func NewDI() *di { return &di{} }

func (d *di) DBPool(ctx context.Context) *pgxpool.Pool {
	if d.dbPool == nil {
		pool, err := pgxpool.New(ctx, config.C().Postgres.DSN())
		if err != nil {
			panic(fmt.Sprintf("failed to create pg pool: %v\n", err))
		}

		closer.AddNamed("PGX Pool",
			func(ctx context.Context) error {
				pool.Close()
				return nil
			})

		if err := pool.Ping(ctx); err != nil {
			panic(fmt.Sprintf("failed to ping db: %v\n", err))
		}

		d.dbPool = pool
	}

	return d.dbPool
}

func (d *di) TxManager(ctx context.Context) *tx.Manager {
	if d.txManager == nil {
		d.txManager = tx.NewManager(d.DBPool(ctx))
	}

	return d.txManager
}

func (d *di) Migrator(ctx context.Context) *migrator.Migrator {
	if d.migr == nil {
		d.migr = migrator.NewMigrator(
			stdlib.OpenDBFromPool(d.DBPool(ctx)),
			config.C().Postgres.MigrationDirectory(),
		)
	}

	return d.migr
}

func (d *di) Notifier(_ context.Context) *notifier.Notifier {
	if d.events == nil {
		d.events = notifier.New()

		closer.AddNamed("Change notifier",
			func(ctx context.Context) error {
				return d.events.Close()
			})
	}

	return d.events
}

func (d *di) ComponentRepository(ctx context.Context) ComponentRepository {
	if d.componentRepo == nil {
		d.componentRepo = componentrepo.NewComponentRepository(d.DBPool(ctx))
	}

	return d.componentRepo
}

func (d *di) PcbRepository(ctx context.Context) PcbRepository {
	if d.pcbRepo == nil {
		d.pcbRepo = pcbrepo.NewPcbRepository(d.DBPool(ctx))
	}

	return d.pcbRepo
}

func (d *di) OrderRepository(ctx context.Context) OrderRepository {
	if d.orderRepo == nil {
		d.orderRepo = orderrepo.NewOrderRepository(d.DBPool(ctx))
	}

	return d.orderRepo
}

func (d *di) MovementRepository(ctx context.Context) ledgersvc.MovementRepository {
	if d.movementRepo == nil {
		d.movementRepo = movementrepo.NewMovementRepository(d.DBPool(ctx))
	}

	return d.movementRepo
}

func (d *di) ClientRepository(ctx context.Context) clientsvc.ClientRepository {
	if d.clientRepo == nil {
		d.clientRepo = clientrepo.NewClientRepository(d.DBPool(ctx))
	}

	return d.clientRepo
}

func (d *di) EmployeeRepository(ctx context.Context) authsvc.EmployeeRepository {
	if d.employeeRepo == nil {
		d.employeeRepo = employeerepo.NewEmployeeRepository(d.DBPool(ctx))
	}

	return d.employeeRepo
}

func (d *di) Ledger(ctx context.Context) Ledger {
	if d.ledger == nil {
		d.ledger = ledgersvc.NewLedgerService(d.MovementRepository(ctx))
	}

	return d.ledger
}

func (d *di) Stock(ctx context.Context) Stock {
	if d.stock == nil {
		d.stock = stocksvc.NewStockService(
			d.ComponentRepository(ctx),
			d.PcbRepository(ctx),
			d.Ledger(ctx),
			d.TxManager(ctx),
		)
	}

	return d.stock
}

func (d *di) ComponentService(ctx context.Context) thttp.ComponentService {
	if d.components == nil {
		d.components = componentsvc.NewComponentService(
			d.ComponentRepository(ctx),
			d.Stock(ctx),
			d.TxManager(ctx),
			d.Notifier(ctx),
		)
	}

	return d.components
}

func (d *di) BomService(ctx context.Context) thttp.BomService {
	if d.bom == nil {
		d.bom = bomsvc.NewBomService(
			d.PcbRepository(ctx),
			d.ComponentRepository(ctx),
			d.Stock(ctx),
			d.Ledger(ctx),
			d.TxManager(ctx),
			d.Notifier(ctx),
		)
	}

	return d.bom
}

func (d *di) ClientService(ctx context.Context) thttp.ClientService {
	if d.clients == nil {
		d.clients = clientsvc.NewClientService(
			d.ClientRepository(ctx),
			d.TxManager(ctx),
			d.Notifier(ctx),
		)
	}

	return d.clients
}

func (d *di) OrderService(ctx context.Context) thttp.OrderService {
	if d.orders == nil {
		d.orders = ordersvc.NewOrderService(
			d.OrderRepository(ctx),
			d.PcbRepository(ctx),
			d.Stock(ctx),
			d.TxManager(ctx),
			d.Notifier(ctx),
		)
	}

	return d.orders
}

func (d *di) AuthService(ctx context.Context) thttp.AuthService {
	if d.auth == nil {
		d.auth = authsvc.NewAuthService(d.EmployeeRepository(ctx))
	}

	return d.auth
}

func (d *di) SchedulerService(ctx context.Context) SchedulerService {
	if d.scheduler == nil {
		d.scheduler = schedulersvc.NewSchedulerService(
			d.OrderRepository(ctx),
			d.OrderService(ctx),
			config.C().Scheduler.Location(),
		)
	}

	return d.scheduler
}

func (d *di) Handlers(ctx context.Context) thttp.Handlers {
	return thttp.Handlers{
		Components: thttp.NewComponentHandler(d.ComponentService(ctx)),
		Pcbs:       thttp.NewPcbHandler(d.BomService(ctx)),
		Clients:    thttp.NewClientHandler(d.ClientService(ctx)),
		Orders:     thttp.NewOrderHandler(d.OrderService(ctx)),
		Movements:  thttp.NewMovementHandler(d.Ledger(ctx)),
		Auth:       thttp.NewAuthHandler(d.AuthService(ctx)),
		Events:     thttp.NewEventHandler(d.Notifier(ctx)),
	}
}
