package router

import (
	"net/http"
	"time"

	_ "pet-adoption/docs"
	memfiles "pet-adoption/internal/adapters/filestorage/memory"
	notifyadapter "pet-adoption/internal/adapters/notify"
	mem "pet-adoption/internal/adapters/storage/memory"
	"pet-adoption/internal/config"
	"pet-adoption/internal/domain/animals"
	"pet-adoption/internal/domain/appointments"
	"pet-adoption/internal/domain/documents"
	"pet-adoption/internal/domain/lifecycle"
	"pet-adoption/internal/middleware"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/ports/auth"
	"pet-adoption/internal/ports/capabilities"
	"pet-adoption/internal/ports/files"
	"pet-adoption/internal/ports/notify"
	"pet-adoption/internal/ports/store"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// nil => config.Default()
	Config *config.Config
	Log    logger.Logger

	// Opcionales: si no vienen se usa la versión in-memory.
	Store    store.Store
	Files    files.Storage
	Notifier notify.Dispatcher

	AuthVerifier auth.AuthVerifier                 // puede ser nil (modo dev)
	Capabilities capabilities.CapabilitiesResolver // puede ser nil

	// Reloj inyectable para tests.
	Now func() time.Time
}

func NewRouter(opts Options) http.Handler {
	cfg := config.Default()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	st := opts.Store
	if st == nil {
		st = mem.NewStore()
	}
	fs := opts.Files
	if fs == nil {
		fs = memfiles.New()
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = notifyadapter.NewAsyncDispatcher(notifyadapter.NewLogSender(log), log, cfg.Notifications.Timeout)
	}

	required, ok := documents.ParseTypes(cfg.Documents.RequiredTypes)
	if !ok {
		log.Warn("unknown required document type, using all types", map[string]any{"types": cfg.Documents.RequiredTypes})
		required = documents.AllTypes
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(middleware.AuthOptions{
		Verifier:     opts.AuthVerifier,
		Capabilities: opts.Capabilities,
		Log:          log,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Services por módulo
	animalsSvc := animals.NewService(st.Animals()).WithClock(now)
	svc := lifecycle.New(lifecycle.Deps{
		Store:    st,
		Files:    fs,
		Notifier: notifier,
		Log:      log,
		Now:      now,
		Policy: appointments.Policy{
			Location:    cfg.Scheduling.Location(),
			Times:       cfg.Scheduling.Slots,
			HorizonDays: cfg.Scheduling.HorizonDays,
		},
		RequiredDocs:     required,
		MaxDocumentBytes: cfg.Documents.MaxBytes,
	})

	// Rutas por módulo
	animals.RegisterRoutes(r, animalsSvc)
	lifecycle.RegisterRoutes(r, svc)

	return r
}
