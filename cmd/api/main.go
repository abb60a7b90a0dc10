package main

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"pawnshop/internal/config"
	"pawnshop/internal/domain/model"
	"pawnshop/internal/handler"
	"pawnshop/internal/infra/db"
	infraRepo "pawnshop/internal/infra/repository"
	"pawnshop/internal/server"
	"pawnshop/internal/usecase"
	auth "pawnshop/internal/usecase/auth"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func (i *jwtIssuer) Issue(accountID int64, role model.Role, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":  accountID,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func newLogger(goEnv string) (*zap.Logger, error) {
	if goEnv == "prod" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func main() {
	//.envは無ければ環境変数だけで動く
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := newLogger(cfg.GoEnv)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		logger.Fatal("db connect failed", zap.Error(err))
	}
	if err := gormDB.AutoMigrate(
		&model.Account{},
		&model.Product{},
		&model.Order{},
		&model.OrderDetail{},
		&model.Pawn{},
		&model.PawnDetail{},
		&model.RefreshToken{},
	); err != nil {
		logger.Fatal("migrate failed", zap.Error(err))
	}

	//Repository（GORM実装）生成
	accountRepo := infraRepo.NewAccountGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	pawnRepo := infraRepo.NewPawnGormRepository(gormDB)
	rtRepo := infraRepo.NewRefreshTokenGormRepository(gormDB)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}
	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()

	//JWT issuer
	issuer := &jwtIssuer{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: 15 * time.Minute,
	}

	//refresh TTL
	refreshTTL := 14 * 24 * time.Hour

	//Usecase生成
	registerUC := auth.NewRegisterStaffUsecase(accountRepo, hasher, clock)
	loginUC := auth.NewLoginUsecase(accountRepo, rtRepo, verifier, issuer, idGen, clock, refreshTTL)
	refreshUC := auth.NewRefreshUsecase(accountRepo, rtRepo, issuer, idGen, clock)

	clientUC := usecase.NewClientUsecase(accountRepo)
	productUC := usecase.NewProductUsecase(productRepo)
	orderUC := usecase.NewOrderUsecase(orderRepo, accountRepo, clientUC, productUC)
	pawnUC := usecase.NewPawnUsecase(pawnRepo, accountRepo, clientUC, productUC)

	//Handler生成
	authH := handler.NewAuthHandler(registerUC, loginUC, refreshUC, refreshTTL)
	clientH := handler.NewClientHandler(clientUC)
	productH := handler.NewProductHandler(productUC)
	orderH := handler.NewOrderHandler(orderUC)
	pawnH := handler.NewPawnHandler(pawnUC)

	//Server起動
	e := server.New(logger)
	server.RegisterRoutes(e, cfg, authH, clientH, productH, orderH, pawnH)

	addr := ":" + cfg.Port
	logger.Info("server starting", zap.String("addr", addr))
	if err := server.Start(e, addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
