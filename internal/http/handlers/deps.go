package handlers

import (
	"campusmart/internal/config"
	"campusmart/internal/payments"
	"campusmart/internal/repos"
	"campusmart/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	SearchHandler    *SearchHandler
	ProductHandler   *ProductHandler
	PurchaseHandler  *PurchaseHandler
	ReviewHandler    *ReviewHandler
	PricingHandler   *PricingHandler
	AnalyticsHandler *AnalyticsHandler
	AdminHandler     *AdminHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService) *Deps {
	prodRepo := repos.NewProductRepo(db)
	reviewRepo := repos.NewReviewRepo(db)
	logRepo := repos.NewSearchLogRepo(db)
	txnRepo := repos.NewTransactionRepo(db)
	statsRepo := repos.NewAnalyticsRepo(db)

	catalogSvc := services.NewCatalogService(prodRepo, logRepo, reviewRepo)
	purchaseSvc := services.NewPurchaseService(prodRepo, txnRepo, payments.TokenGateway{})
	reviewSvc := services.NewReviewService(reviewRepo, prodRepo)
	analyticsSvc := services.NewAnalyticsService(logRepo, statsRepo)

	return &Deps{
		SearchHandler:    &SearchHandler{Catalog: catalogSvc},
		ProductHandler:   &ProductHandler{Catalog: catalogSvc},
		PurchaseHandler:  &PurchaseHandler{Purchase: purchaseSvc},
		ReviewHandler:    &ReviewHandler{Reviews: reviewSvc},
		PricingHandler:   &PricingHandler{},
		AnalyticsHandler: &AnalyticsHandler{Analytics: analyticsSvc},
		AdminHandler:     &AdminHandler{Users: auth.Users, Prods: prodRepo, Txns: txnRepo},
	}
}
