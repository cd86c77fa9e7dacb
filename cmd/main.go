package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/VittaCapital/api-investimentos/internal/arquivo"
	"github.com/VittaCapital/api-investimentos/internal/auth"
	"github.com/VittaCapital/api-investimentos/internal/contrato"
	"github.com/VittaCapital/api-investimentos/internal/middleware"
	"github.com/VittaCapital/api-investimentos/internal/notificacao"
	"github.com/VittaCapital/api-investimentos/internal/saldo"
	"github.com/VittaCapital/api-investimentos/internal/usuario"
	"github.com/VittaCapital/api-investimentos/internal/utils/db"
)

func initLogger() {
	level := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func main() {
	_ = godotenv.Load()
	initLogger()

	database, err := db.GetDB()
	if err != nil {
		log.Fatal("Erro ao conectar no banco:", err)
	}

	if err := database.AutoMigrate(
		&usuario.Usuario{},
		&contrato.Contrato{},
		&auth.RefreshToken{},
	); err != nil {
		log.Fatal("Erro no AutoMigrate:", err)
	}

	// Storage de documentos (opcional; sem MINIO_ENDPOINT os anexos
	// são ignorados e vale o documentString)
	var documentos contrato.ArmazenadorDocumento
	var arquivoHandler *arquivo.Handler
	if os.Getenv("MINIO_ENDPOINT") != "" {
		storage, err := arquivo.NewStorage(arquivo.ConfigFromEnv())
		if err != nil {
			log.Fatal("Erro ao configurar storage de documentos:", err)
		}
		if err := storage.EnsureBucket(context.Background()); err != nil {
			log.Fatal("Erro ao preparar bucket:", err)
		}
		documentos = storage
		arquivoHandler = arquivo.NewHandler(storage)
	}

	// Serviços
	saldoService := saldo.NewService()
	contratoService := contrato.NewService(saldoService)
	contratoService.Notificar = func(c contrato.Contrato) {
		notificacao.EnviarAlertaAprovacao(c.ID, c.UserID, c.Value)
	}

	// Handlers
	usuarioHandler := usuario.NewHandler(database)
	contratoHandler := contrato.NewHandler(database, contratoService, documentos)
	saldoHandler := saldo.NewHandler(database, saldoService)

	// Router
	r := mux.NewRouter()
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestLogger)

	// Rotas públicas
	r.HandleFunc("/user", usuarioHandler.CriarUsuario).Methods("POST")
	r.Handle("/login", middleware.RateLimit(10, time.Minute)(
		http.HandlerFunc(usuarioHandler.Login))).Methods("POST")
	r.HandleFunc("/auth/refresh", auth.RefreshHTTPHandler(database, usuario.SessaoPorID)).Methods("POST")
	r.HandleFunc("/auth/logout", auth.LogoutHTTPHandler(database)).Methods("POST")
	if arquivoHandler != nil {
		r.HandleFunc("/download-archive/{filename}", arquivoHandler.Baixar).Methods("GET")
	}

	// Rotas autenticadas
	priv := r.PathPrefix("/").Subrouter()
	priv.Use(auth.MiddlewareAutenticacao)
	priv.HandleFunc("/contract", contratoHandler.CriarContrato).Methods("POST")
	priv.HandleFunc("/contract/saldo", contratoHandler.CriarContratoComSaldo).Methods("POST")
	priv.HandleFunc("/contract/{id}/{status}", contratoHandler.AtualizarStatus).Methods("PUT")
	priv.HandleFunc("/user/contract", contratoHandler.ListarDoUsuario).Methods("GET")
	priv.HandleFunc("/user/saldo", saldoHandler.ConsultarSaldo).Methods("GET")
	priv.HandleFunc("/user/balance", saldoHandler.ConsultarBalance).Methods("GET")

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	slog.Info("servidor ouvindo", "port", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
