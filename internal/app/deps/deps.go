package deps

import (
	"context"
	"fmt"
	"sync"
	"time"

	"memberd/internal/config"
	dl "memberd/internal/core/domain/logging"
	"memberd/internal/core/domain/member"
	dbmember "memberd/internal/db/member"
	"memberd/internal/implementations/email"
	"memberd/internal/implementations/logging"
	passwordhasher "memberd/internal/implementations/password_hasher"
	"memberd/internal/implementations/verification"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/getsentry/sentry-go"
	"github.com/jackc/pgx/v4/pgxpool"
)

type Deps struct {
	Config    *config.Config
	AwsConfig aws.Config
	Logger    dl.Logger

	DB *pgxpool.Pool

	Now func() time.Time

	MemberRepository member.Repository

	VerificationTokenGenerator member.VerificationTokenGenerator
	VerificationTokenHasher    member.VerificationTokenHasher
	VerificationTokenSender    member.VerificationTokenSender
	PasswordHasher             member.PasswordHasher
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	deps.initAwsConfig()

	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()

	deps.Now = func() time.Time { return time.Now().UTC() }
	deps.MemberRepository = dbmember.NewPgxRepository(deps.DB)
	deps.VerificationTokenGenerator = verification.NewGenerator()
	deps.VerificationTokenHasher = verification.NewSHA256Hasher()
	deps.VerificationTokenSender = deps.initVerificationTokenSender()
	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.Secret, deps.Config.BcryptHasherCost)

	flushSentry := deps.initSentry()

	return deps, func() {
		closeFuncs := []func(){
			closePgxPool,
			closeLogger,
			flushSentry,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initAwsConfig() {
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	)
	if err != nil {
		panic(err)
	}
	deps.AwsConfig = cfg
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger()
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initVerificationTokenSender() member.VerificationTokenSender {
	if deps.Config.IsTestMode || deps.Config.EmailTransport == config.EmailTransportLog {
		return email.NewLogSender(deps.Logger, deps.Config.BaseURL)
	}
	return email.NewSESSender(deps.AwsConfig, deps.Config.EmailSender, deps.Config.BaseURL)
}

func (deps *Deps) initSentry() func() {
	if deps.Config.SentryDsn != nil {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              deps.Config.SentryDsn.String(),
			TracesSampleRate: 0.01,
		})
		if err != nil {
			panic(fmt.Sprintf("could not init Sentry: %v\n", err))
		}
		deps.Logger.Info(context.Background(), "Sentry has been successfully initialized.")
		return func() {
			ok := sentry.Flush(5 * time.Second)
			deps.Logger.Info(context.Background(), "Sentry events flushed.", dl.Entry("ok", ok))
		}
	}

	deps.Logger.Info(context.Background(), "Sentry is disabled.")
	return func() {}
}
