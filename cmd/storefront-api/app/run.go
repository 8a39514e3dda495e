package app

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/marceloquintiliano12-debug/a-aidaTati/configs"
	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/adapter/cache"
	adapterhttp "github.com/marceloquintiliano12-debug/a-aidaTati/internal/adapter/http"
	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/adapter/http/middleware"
	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/adapter/kafka"
	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/adapter/queue"
	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/adapter/repo"
	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/board"
	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/cart"
	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/catalog"
	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/checkout"
	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/logging"
	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/order"
	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/pricing"
)

type App struct {
	Router *gin.Engine
}

// InitWithConfig wires every collaborator and returns the ready router plus a
// cleanup that releases them all, including the board's realtime subscription.
func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	logging.Init(cfg.App.Name, cfg.App.LogFile)
	log := logging.New("app")

	appCtx, cancel := context.WithCancel(context.Background())

	pool, err := repo.NewPool(appCtx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
	if err != nil {
		cancel()
		return nil, nil, err
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if err := rdb.Ping(appCtx).Err(); err != nil {
		cancel()
		pool.Close()
		return nil, nil, err
	}

	conn, err := amqp.Dial(cfg.Rabbit.URL)
	if err != nil {
		cancel()
		pool.Close()
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		cancel()
		pool.Close()
		return nil, nil, err
	}
	notifier, err := queue.NewRabbitNotifier(ch, cfg.Rabbit.Exchange, cfg.Rabbit.Queue, cfg.Rabbit.RoutingKey)
	if err != nil {
		cancel()
		pool.Close()
		return nil, nil, err
	}

	producer, err := kafka.NewSyncProducer(cfg.Kafka.Brokers)
	if err != nil {
		cancel()
		pool.Close()
		return nil, nil, err
	}
	group, err := kafka.NewGroup(cfg.Kafka.Brokers, cfg.Kafka.GroupID)
	if err != nil {
		cancel()
		pool.Close()
		return nil, nil, err
	}

	// infra
	orderRepo := repo.NewPostgresOrderRepo(pool)
	productRepo := repo.NewPostgresProductRepo(pool)
	menuCache := cache.NewRedisMenuCache(rdb, cfg.Catalog.CacheTTL)
	idem := cache.NewRedisIdempotencyStore(rdb, cfg.Idempotency.TTL)
	events := kafka.NewOrderEvents(producer, cfg.Kafka.TopicOrders)

	// domain
	store := catalog.NewStore(productRepo, menuCache, logging.New("catalog"))
	carts := cart.NewService()
	pricer := pricing.NewEngine(cfg.DeliveryFee())
	orch := checkout.NewOrchestrator(orderRepo, idem, notifier, events, pricer, checkout.PaymentConfig{
		CheckoutURL:   cfg.Store.PaymentLink,
		PixKey:        cfg.Store.PixKey,
		PixQRImageURL: cfg.Store.PixQRImageURL,
	}, logging.New("checkout"))

	kb := board.New(orderRepo, cfg.Store.BoardPageSize, logging.New("board"))
	{
		ctx, cancelLoad := context.WithTimeout(appCtx, 5*time.Second)
		if err := kb.Refresh(ctx); err != nil {
			// board still fills from the realtime feed
			log.Warn("initial board load failed", "err", err)
		}
		cancelLoad()
	}

	// realtime feed: kafka group -> channel -> single board consumer loop
	feed := make(chan order.Order, 64)
	g, gctx := errgroup.WithContext(appCtx)
	g.Go(func() error {
		kb.Run(gctx, feed)
		return nil
	})
	g.Go(func() error {
		consumer := kafka.NewConsumer(group, []string{cfg.Kafka.TopicOrders},
			func(hctx context.Context, o order.Order) error {
				select {
				case feed <- o:
					return nil
				case <-hctx.Done():
					return hctx.Err()
				}
			}, logging.New("kafka"))
		if err := consumer.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	// handlers + router
	mh := adapterhttp.NewMenuHandler(store, cfg.DeliveryFee())
	cth := adapterhttp.NewCartHandler(carts, store, pricer)
	ckh := adapterhttp.NewCheckoutHandler(carts, orch, cfg.Store.WhatsApp)
	bh := adapterhttp.NewBoardHandler(kb)
	th := adapterhttp.NewTokenHandler(cfg)
	authz := middleware.NewAuthz(cfg)
	router := adapterhttp.NewRouter(mh, cth, ckh, bh, th, authz)

	cleanup := func() {
		cancel()
		if err := g.Wait(); err != nil {
			log.Error("background consumer exited", "err", err)
		}
		_ = group.Close()
		_ = producer.Close()
		_ = ch.Close()
		_ = conn.Close()
		_ = rdb.Close()
		pool.Close()
	}

	return &App{Router: router}, cleanup, nil
}
