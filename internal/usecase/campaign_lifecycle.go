package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/zolovio/Classy-backend/internal/domain/model"
	repo "github.com/zolovio/Classy-backend/internal/repository"
)

// 抽選の受付期間は販売完了から7日間。
const drawWindow = 7 * 24 * time.Hour

// キャンペーンとその抽選の状態を在庫台帳から導出し直す。
// 対象は start_date が入っているキャンペーンのみ。冪等。
//
//   - 未配達分が残っていて inactive なら再開:
//     end_date を消して is_active=true、抽選は解除（start/end を消す）
//   - 全量配達済みで active なら終了:
//     end_date=now で is_active=false、抽選を受付開始（now 〜 now+7日）
//
// 在庫を動かした側のトランザクション内から呼ぶこと。
func refreshCampaignsTx(ctx context.Context, r repo.TxRepos, now time.Time) error {
	campaigns, err := r.Campaigns().ListScheduled(ctx)
	if err != nil {
		return err
	}

	for _, c := range campaigns {
		if err := refreshOneCampaignTx(ctx, r, c, now); err != nil {
			return err
		}
	}
	return nil
}

func refreshOneCampaignTx(ctx context.Context, r repo.TxRepos, c model.Campaign, now time.Time) error {
	sku, err := r.Skus().FindByID(ctx, c.SkuID)
	if errors.Is(err, repo.ErrNotFound) {
		// SKUが消えたキャンペーンは放置（削除経路で片付く）
		return nil
	}
	if err != nil {
		return err
	}

	draw, err := r.Draws().FindByCampaignID(ctx, c.ID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	fulfilled := sku.Quantity == sku.NumberDelivered

	if !fulfilled && !c.IsActive {
		// 再開
		c.EndDate = nil
		c.IsActive = true
		if err := r.Campaigns().Update(ctx, c); err != nil {
			return err
		}

		draw.StartDate = nil
		draw.EndDate = nil
		return r.Draws().Update(ctx, draw)
	}

	if fulfilled && c.IsActive {
		// 終了して抽選開始
		end := now
		c.EndDate = &end
		c.IsActive = false
		if err := r.Campaigns().Update(ctx, c); err != nil {
			return err
		}

		start := now
		drawEnd := now.Add(drawWindow)
		draw.StartDate = &start
		draw.EndDate = &drawEnd
		return r.Draws().Update(ctx, draw)
	}

	return nil
}

// IsClosing はクロージング判定（読み取り専用）。
// 活動中のキャンペーンで、残りがあり、かつ販売率(%)が threshold を超えているもの。
func IsClosing(c model.Campaign, sku model.Sku) bool {
	if !c.IsActive {
		return false
	}
	if sku.Quantity <= 0 {
		return false
	}
	remaining := sku.Quantity - sku.NumberSold
	soldPct := sku.NumberSold * 100 / sku.Quantity
	return remaining > 0 && soldPct > int64(c.Threshold)
}
