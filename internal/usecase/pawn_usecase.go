package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"pawnshop/internal/domain/model"
	repo "pawnshop/internal/repository"
)

type PawnUsecase struct {
	pawnRepo    repo.PawnRepository
	accountRepo repo.AccountRepository
	clients     *ClientUsecase
	catalog     *ProductUsecase
}

// DI
func NewPawnUsecase(
	pawnRepo repo.PawnRepository,
	accountRepo repo.AccountRepository,
	clients *ClientUsecase,
	catalog *ProductUsecase,
) *PawnUsecase {
	return &PawnUsecase{
		pawnRepo:    pawnRepo,
		accountRepo: accountRepo,
		clients:     clients,
		catalog:     catalog,
	}
}

type PawnLineInput struct {
	ProductName string
	Weight      string
	Quantity    int64
	UnitPrice   decimal.Decimal
}

type CreatePawnInput struct {
	CustomerID   *int64
	CustomerName string
	Address      string
	Phone        string
	Deposit      decimal.Decimal
	PawnDate     *time.Time
	ExpireDate   time.Time
	Lines        []PawnLineInput
}

type CreatePawnOutput struct {
	PawnID          int64 `json:"pawn_id"`
	CustomerID      int64 `json:"customer_id"`
	CustomerCreated bool  `json:"customer_created"`
}

// 質入れの作成。日付の検証は書き込みより前に行う。
// 質入れ日が無いときは現在時刻を使う。
func (u *PawnUsecase) CreatePawn(ctx context.Context, staffID int64, in CreatePawnInput) (CreatePawnOutput, error) {
	if staffID <= 0 {
		return CreatePawnOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.CustomerName) == "" {
		return CreatePawnOutput{}, NewHTTPError(http.StatusBadRequest, "customer name required")
	}
	if strings.TrimSpace(in.Phone) == "" {
		return CreatePawnOutput{}, NewHTTPError(http.StatusBadRequest, "phone required")
	}
	if in.ExpireDate.IsZero() {
		return CreatePawnOutput{}, NewHTTPError(http.StatusBadRequest, "expire date required")
	}

	//省略時はここで現在時刻に確定してから検証する
	pawnDate := time.Now()
	if in.PawnDate != nil {
		pawnDate = *in.PawnDate
	}
	if pawnDate.After(in.ExpireDate) {
		return CreatePawnOutput{}, NewHTTPError(http.StatusBadRequest, "pawn date must be before expire date")
	}
	if len(in.Lines) == 0 {
		return CreatePawnOutput{}, NewHTTPError(http.StatusBadRequest, "pawn needs at least one line")
	}

	customer, customerCreated, err := u.clients.ResolveCustomer(ctx, ResolveCustomerInput{
		ID:      in.CustomerID,
		Name:    in.CustomerName,
		Address: in.Address,
		Phone:   in.Phone,
	})
	if err != nil {
		return CreatePawnOutput{}, err
	}

	pawn, err := u.pawnRepo.Create(ctx, model.Pawn{
		CustomerID: customer.ID,
		Deposit:    in.Deposit,
		PawnDate:   pawnDate,
		ExpireDate: in.ExpireDate,
	})
	if err != nil {
		return CreatePawnOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	for _, line := range in.Lines {
		product, _, err := u.catalog.LookupOrCreateByName(ctx, staffID, line.ProductName)
		if err != nil {
			return CreatePawnOutput{}, err
		}

		detail := model.PawnDetail{
			PawnID:    pawn.ID,
			ProductID: product.ID,
			Weight:    line.Weight,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		}
		if err := u.pawnRepo.CreateDetail(ctx, detail); err != nil {
			return CreatePawnOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	return CreatePawnOutput{
		PawnID:          pawn.ID,
		CustomerID:      customer.ID,
		CustomerCreated: customerCreated,
	}, nil
}

type PawnLineRecord struct {
	ProductName string          `json:"product_name"`
	ProductID   int64           `json:"product_id"`
	Weight      string          `json:"weight"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type PawnRecord struct {
	PawnID     int64            `json:"pawn_id"`
	Deposit    decimal.Decimal  `json:"deposit"`
	PawnDate   time.Time        `json:"pawn_date"`
	ExpireDate time.Time        `json:"expire_date"`
	Products   []PawnLineRecord `json:"products"`
}

// 顧客の質入れ履歴。質入れごとに1レコード。
// 同じ商品が複数明細に出てきても商品IDごとに1回だけ載せる（注文側との違い）。
func (u *PawnUsecase) GetClientPawns(ctx context.Context, sel repo.CustomerSelector) ([]PawnRecord, error) {
	customer, err := u.accountRepo.FindCustomer(ctx, sel)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, NewHTTPError(http.StatusNotFound, "client not found")
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	rows, err := u.pawnRepo.ListDetailRows(ctx, repo.CustomerSelector{ID: &customer.ID})
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return groupPawnRows(rows), nil
}

// JOINのフラット行を質入れ単位にまとめる。商品は質入れ内でIDごとに1回だけ。
func groupPawnRows(rows []repo.PawnDetailRow) []PawnRecord {
	records := []PawnRecord{}
	index := map[int64]int{}
	seen := map[int64]map[int64]bool{}

	for _, row := range rows {
		i, ok := index[row.PawnID]
		if !ok {
			records = append(records, PawnRecord{
				PawnID:     row.PawnID,
				Deposit:    row.Deposit,
				PawnDate:   row.PawnDate,
				ExpireDate: row.ExpireDate,
				Products:   []PawnLineRecord{},
			})
			i = len(records) - 1
			index[row.PawnID] = i
			seen[row.PawnID] = map[int64]bool{}
		}

		if seen[row.PawnID][row.ProductID] {
			continue
		}
		seen[row.PawnID][row.ProductID] = true

		records[i].Products = append(records[i].Products, PawnLineRecord{
			ProductName: row.ProductName,
			ProductID:   row.ProductID,
			Weight:      row.Weight,
			Quantity:    row.Quantity,
			UnitPrice:   row.UnitPrice,
		})
	}

	return records
}

type CustomerPawnRecord struct {
	CustomerID   int64            `json:"customer_id"`
	CustomerName string           `json:"customer_name"`
	Phone        string           `json:"phone"`
	Address      string           `json:"address"`
	Deposit      decimal.Decimal  `json:"deposit"`
	PawnDate     time.Time        `json:"pawn_date"`
	ExpireDate   time.Time        `json:"expire_date"`
	Products     []PawnLineRecord `json:"products"`
}

// 全質入れの顧客単位ビュー。行はpawn id降順で来るので、
// 顧客ごとのヘッダは一番新しい質入れの値になる。明細は全件そのまま載せる。
// 全履歴が必要なときはGetClientPawnsを使う。
func (u *PawnUsecase) ListAllPawns(ctx context.Context, f repo.PawnListFilter) ([]CustomerPawnRecord, error) {
	rows, err := u.pawnRepo.ListAllRows(ctx, f)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	records := []CustomerPawnRecord{}
	index := map[int64]int{}

	for _, row := range rows {
		i, ok := index[row.CustomerID]
		if !ok {
			records = append(records, CustomerPawnRecord{
				CustomerID:   row.CustomerID,
				CustomerName: row.CustomerName,
				Phone:        row.Phone,
				Address:      row.Address,
				Deposit:      row.Deposit,
				PawnDate:     row.PawnDate,
				ExpireDate:   row.ExpireDate,
				Products:     []PawnLineRecord{},
			})
			i = len(records) - 1
			index[row.CustomerID] = i
		}

		records[i].Products = append(records[i].Products, PawnLineRecord{
			ProductName: row.ProductName,
			ProductID:   row.ProductID,
			Weight:      row.Weight,
			Quantity:    row.Quantity,
			UnitPrice:   row.UnitPrice,
		})
	}

	return records, nil
}

// 次の質入れID。1件も無ければ1から始まる。
func (u *PawnUsecase) NextPawnID(ctx context.Context) (int64, error) {
	last, err := u.pawnRepo.LastID(ctx)
	if errors.Is(err, repo.ErrNotFound) {
		return 1, nil
	}
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return last + 1, nil
}
