package router

import (
	"marketplace-backend/internal/application"
	"marketplace-backend/internal/container"
	pginfra "marketplace-backend/internal/infrastructure/postgres"
	handlers "marketplace-backend/internal/interface/http"
	"marketplace-backend/internal/router/modules"
)

// InitModules wires repositories, services and handlers from the container
// singletons and registers every feature module. Called once at startup.
func InitModules(r *Registry) {
	pool := container.GetPGPool()
	cfg := container.GetConfig()
	logger := container.GetLogger()
	jwt := container.GetJWT()

	users := pginfra.NewUserRepository(pool)
	products := pginfra.NewProductRepository(pool)
	categories := pginfra.NewCategoryRepository(pool)
	reviews := pginfra.NewReviewRepository(pool)
	favourites := pginfra.NewFavouriteRepository(pool)
	orders := pginfra.NewOrderRepository(pool)
	chats := pginfra.NewChatRepository(pool)

	// The publisher singleton is unset when RabbitMQ is down or disabled.
	// Assigning the concrete pointer unconditionally would hand the
	// services a non-nil interface around a nil publisher.
	var pub application.Publisher
	if p := container.GetRabbitPub(); p != nil {
		pub = p
	}

	authSvc := application.NewAuthService(users, jwt, pub, container.GetRedis(), logger, cfg)
	userSvc := application.NewUserService(users, container.GetGCS(), cfg.GCSBucket, container.GetRedis(), logger)
	uploadSvc := application.NewUploadService(container.GetGCS(), cfg.GCSBucket, logger)
	productSvc := application.NewProductService(products, categories, container.GetES(), cfg.ESProductsIndex, logger)
	categorySvc := application.NewCategoryService(categories)
	reviewSvc := application.NewReviewService(reviews, products)
	favouriteSvc := application.NewFavouriteService(favourites, products)
	orderSvc := application.NewOrderService(orders, products, users, pub, logger, cfg)
	chatSvc := application.NewChatService(chats, users)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, container.GetCookie(), logger), jwt))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, logger), jwt))
	r.Add(modules.NewProductModule(handlers.NewProductHandler(productSvc, logger), jwt))
	r.Add(modules.NewCategoryModule(handlers.NewCategoryHandler(categorySvc), jwt))
	r.Add(modules.NewReviewModule(handlers.NewReviewHandler(reviewSvc), jwt))
	r.Add(modules.NewFavouriteModule(handlers.NewFavouriteHandler(favouriteSvc), jwt))
	r.Add(modules.NewOrderModule(handlers.NewOrderHandler(orderSvc), jwt))
	r.Add(modules.NewChatModule(handlers.NewChatHandler(chatSvc), jwt))
	r.Add(modules.NewUploadModule(handlers.NewUploadHandler(uploadSvc, logger), jwt))
}
