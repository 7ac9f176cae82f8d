package main

import (
	"log"
	"net/http"

	"github.com/smartserve/driftguard-assistant/internal/adapters/driftguard"
	httpadapter "github.com/smartserve/driftguard-assistant/internal/adapters/http"
	"github.com/smartserve/driftguard-assistant/internal/adapters/llm"
	"github.com/smartserve/driftguard-assistant/internal/adapters/slack"
	memstore "github.com/smartserve/driftguard-assistant/internal/adapters/storage/memory"
	"github.com/smartserve/driftguard-assistant/internal/app/chatflow"
	"github.com/smartserve/driftguard-assistant/internal/app/conversation"
	"github.com/smartserve/driftguard-assistant/internal/app/executor"
	"github.com/smartserve/driftguard-assistant/internal/app/registry"
	"github.com/smartserve/driftguard-assistant/internal/app/tools"
	"github.com/smartserve/driftguard-assistant/internal/config"
	"github.com/smartserve/driftguard-assistant/internal/domain"
)

func main() {
	cfg := config.Load()

	var gateway domain.ModelGateway
	if cfg.UseMockLLM {
		log.Println("[LLM] Using MOCK model gateway")
		gateway = llm.NewMockGateway()
	} else {
		log.Printf("[LLM] Using OpenAI model gateway (model=%s)", cfg.OpenAIModel)
		var err error
		gateway, err = llm.NewOpenAIGateway(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		if err != nil {
			log.Fatalf("error initializing OpenAI gateway: %v", err)
		}
	}

	driftClient := driftguard.NewClient(cfg.DriftGuardAPIURL, cfg.ToolTimeout)
	notifier := slack.NewNotifier(cfg.SlackWebhookURL, cfg.ToolTimeout)
	if !notifier.Configured() {
		log.Println("[SLACK] No webhook configured, Slack tools will report NotConfigured")
	}

	reg := registry.New()
	reg.MustRegister(
		tools.NewStatisticsTool(driftClient),
		tools.NewActiveDriftTool(driftClient),
		tools.NewHealthCheckTool(driftClient),
		tools.NewTriggerAnalysisTool(driftClient),
		tools.NewComprehensiveReportTool(driftClient),
		tools.NewSlackReportTool(notifier),
		tools.NewSlackAlertTool(notifier),
		tools.NewSlackSummaryTool(notifier),
	)

	store := memstore.NewSessionStore()
	orchestrator := chatflow.New(
		gateway,
		store,
		executor.New(reg),
		reg,
		llm.SystemPreamble,
		chatflow.WithHistoryLimit(cfg.HistoryLimit),
	)

	svc := conversation.NewService(orchestrator, store)
	handler := httpadapter.NewServer(svc, driftClient, notifier)

	addr := ":" + cfg.Port
	log.Println("DriftGuard Assistant listening on", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal(err)
	}
}
