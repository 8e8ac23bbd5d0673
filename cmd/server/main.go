package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"docuchat/internal/ai"
	appsvc "docuchat/internal/app"
	"docuchat/internal/bootstrap"
	"docuchat/internal/chunker"
	"docuchat/internal/pkg/pdfextract"
	rabbitmqClient "docuchat/internal/platform/rabbitmq"
	"docuchat/internal/repository"
	"docuchat/internal/storage"
	"docuchat/internal/summarizer"
	httptransport "docuchat/internal/transport/http"
)

func main() {
	ctx := context.Background()

	app, err := bootstrap.New(ctx)
	if err != nil {
		log.Fatalf("bootstrap failed: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("close resources failed: %v", err)
		}
	}()

	fileStore, err := storage.NewFileStore(app.Config.Storage.SourcesPath)
	if err != nil {
		log.Fatalf("init file store failed: %v", err)
	}

	documentService := appsvc.NewDocumentService(
		pdfextract.New(),
		chunker.New(chunker.DefaultChunkSize, chunker.DefaultOverlap),
		summarizer.NewLeadSentences(),
		app.Index,
		repository.NewDocumentRepository(app.MySQL),
		fileStore,
		app.Stats,
	)

	answerer := ai.NewChatAnswerer(app.LLMClient, ai.ChatConfig{
		BaseURL: app.Config.LLM.BaseURL,
		APIKey:  app.Config.LLM.APIKey,
		Model:   app.Config.LLM.Model,
	})
	publisher := rabbitmqClient.NewExchangePublisher(app.MQConn, app.Config.RabbitMQ.ExchangePersistQueue)
	chatService := appsvc.NewChatService(app.Index, answerer, publisher, app.Config.Retrieval.TopK)

	router := httptransport.NewRouter(app, documentService, chatService)
	server := &http.Server{
		Addr:              app.Config.HTTPAddr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	waitForShutdown(server)
}

func waitForShutdown(server *http.Server) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown failed: %v", err)
	}
}
