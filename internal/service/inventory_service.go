package service

import (
	"context"
	"strings"
	"time"

	"github.com/alimikegami/refurbished-store/storefront-service/internal/domain"
	"github.com/alimikegami/refurbished-store/storefront-service/internal/dto"
	"github.com/alimikegami/refurbished-store/storefront-service/internal/repository"
	"github.com/alimikegami/refurbished-store/storefront-service/pkg/errs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
)

const scheduledSyncTimeout = 5 * time.Minute

var inventoryModelMap = map[string]string{
	"PIXEL9A":       "Pixel 9a",
	"PIXEL9PROFOLD": "Pixel 9 Pro Fold",
	"PIXEL9PROXL":   "Pixel 9 Pro XL",
	"PIXEL9PRO":     "Pixel 9 Pro",
	"PIXEL9":        "Pixel 9",
	"PIXEL8A":       "Pixel 8a",
	"PIXEL8PRO":     "Pixel 8 Pro",
	"PIXEL8":        "Pixel 8",
	"PIXELFOLD":     "Pixel Fold",
	"PIXELTABLET":   "Pixel Tablet",
	"PIXEL7A":       "Pixel 7a",
	"PIXEL7PRO":     "Pixel 7 Pro",
	"PIXEL7":        "Pixel 7",
	"PIXEL6A":       "Pixel 6a",
	"PIXEL6PRO":     "Pixel 6 Pro",
	"PIXEL6":        "Pixel 6",
}

var (
	inventorySyncRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_inventory_sync_runs_total",
		Help: "Inventory sync runs by outcome.",
	}, []string{"outcome"})
	inventoryStockUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_inventory_stock_updates_total",
		Help: "Per model and condition stock writes by outcome.",
	}, []string{"outcome"})
)

type InventoryServiceImpl struct {
	feed      InventoryFeed
	repo      repository.ProductRepository
	publisher EventPublisher
}

func CreateInventoryService(feed InventoryFeed, repo repository.ProductRepository, publisher EventPublisher) InventoryService {
	return &InventoryServiceImpl{feed: feed, repo: repo, publisher: publisher}
}

// MapInventoryModel translates a feed identifier such as "PIXEL9PRO" into a
// catalog model name. Case and spaces are ignored.
func MapInventoryModel(model string) (string, bool) {
	key := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(model), " ", ""))
	name, ok := inventoryModelMap[key]
	return name, ok
}

// ConditionQuantities returns the explicit breakdown when present, otherwise a
// floored 50/30/20 split of the total quantity.
func ConditionQuantities(record dto.InventoryRecord) map[string]int {
	if record.ConditionBreakdown != nil {
		return record.ConditionBreakdown
	}

	total := record.Quantity
	if total < 0 {
		total = 0
	}

	return map[string]int{
		domain.ConditionExcellent: total * 50 / 100,
		domain.ConditionGood:      total * 30 / 100,
		domain.ConditionFair:      total * 20 / 100,
	}
}

func DetermineStockCount(record dto.InventoryRecord, condition string) int {
	if record.Availability != dto.AvailabilityInStock {
		return 0
	}

	count := ConditionQuantities(record)[condition]
	if count < 0 {
		return 0
	}

	return count
}

func recordConditions(record dto.InventoryRecord) []string {
	condition := strings.ToUpper(strings.TrimSpace(record.Condition))
	if condition == "" {
		return domain.Conditions
	}

	if !domain.IsValidCondition(condition) {
		return nil
	}

	return []string{condition}
}

func (s *InventoryServiceImpl) SyncInventory(ctx context.Context) (resp dto.InventorySyncResult, err error) {
	records, err := s.feed.FetchInventory(ctx)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "SyncInventory").Msg("error fetching inventory feed")
		inventorySyncRuns.WithLabelValues("feed_error").Inc()
		return resp, errs.ErrInventoryFeed
	}

	resp.RecordsReceived = len(records)

	for _, record := range records {
		modelName, ok := MapInventoryModel(record.Model)
		if !ok {
			log.Ctx(ctx).Debug().Str("component", "SyncInventory").Str("model", record.Model).Msg("skipping unmapped inventory model")
			resp.RecordsSkipped++
			continue
		}

		conditions := recordConditions(record)
		if len(conditions) == 0 {
			log.Ctx(ctx).Debug().Str("component", "SyncInventory").Str("condition", record.Condition).Msg("skipping unknown condition")
			resp.RecordsSkipped++
			continue
		}

		for _, condition := range conditions {
			count := DetermineStockCount(record, condition)

			matched, err := s.repo.SetStockByModelCondition(ctx, modelName, condition, count)
			if err != nil {
				log.Ctx(ctx).Error().Err(err).
					Str("component", "SyncInventory").
					Str("model", modelName).
					Str("condition", condition).
					Msg("error updating stock")
				resp.UpdatesFailed++
				inventoryStockUpdates.WithLabelValues("failed").Inc()
				continue
			}

			resp.UpdatesApplied++
			resp.ProductsMatched += matched
			inventoryStockUpdates.WithLabelValues("applied").Inc()
		}
	}

	inventorySyncRuns.WithLabelValues("completed").Inc()
	log.Ctx(ctx).Info().
		Str("component", "SyncInventory").
		Int("records", resp.RecordsReceived).
		Int("skipped", resp.RecordsSkipped).
		Int("applied", resp.UpdatesApplied).
		Int("failed", resp.UpdatesFailed).
		Int64("matched", resp.ProductsMatched).
		Msg("inventory sync completed")

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, dto.EventInventorySynced, "inventory", resp); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("component", "SyncInventory").Msg("error publishing event")
		}
	}

	return resp, nil
}

// RunScheduledSync is the scheduler entry point. Errors are logged only.
func (s *InventoryServiceImpl) RunScheduledSync() {
	ctx, cancel := context.WithTimeout(context.Background(), scheduledSyncTimeout)
	defer cancel()

	ctx = log.Logger.With().Str("job", "inventory_sync").Logger().WithContext(ctx)

	log.Ctx(ctx).Info().Msg("running scheduled inventory sync")
	_, _ = s.SyncInventory(ctx)
}

func (s *InventoryServiceImpl) GetInventoryStatus(ctx context.Context) (resp []dto.InventoryRecord, err error) {
	resp, err = s.feed.FetchInventory(ctx)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetInventoryStatus").Msg("")
		return nil, errs.ErrInventoryFeed
	}

	if resp == nil {
		resp = []dto.InventoryRecord{}
	}

	return resp, nil
}
