package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	json "github.com/bytedance/sonic"
	"go.alis.build/alog"
	"go.alis.build/utils/retry"

	"smartSheet/contracts"
)

const WebhookWorkersCount = 5

const webhookQueueSize = 20

const webhookAttempts = 3

type SheetWebhooks map[string]string

type WebhookSendCommand struct {
	Webhook string
	Update  contracts.CellUpdate
}

type WebhookDispatcher struct {
	queue      chan WebhookSendCommand
	webhooks   map[string]SheetWebhooks
	client     *http.Client
	retrySleep time.Duration

	mutex     sync.RWMutex
	done      chan struct{}
	closeOnce sync.Once
	workers   sync.WaitGroup
}

func NewWebhookDispatcher() *WebhookDispatcher {
	return &WebhookDispatcher{
		queue:      make(chan WebhookSendCommand, webhookQueueSize),
		done:       make(chan struct{}),
		webhooks:   map[string]SheetWebhooks{},
		client:     &http.Client{Timeout: time.Second * 5},
		retrySleep: time.Millisecond * 200,
	}
}

func (manager *WebhookDispatcher) SetWebhookUrl(canonicalSheetId string, canonicalCellId string, webhookUrl string) {
	manager.mutex.Lock()
	defer manager.mutex.Unlock()

	if _, ok := manager.webhooks[canonicalSheetId]; !ok {
		manager.webhooks[canonicalSheetId] = SheetWebhooks{}
	}

	if webhookUrl == "" {
		delete(manager.webhooks[canonicalSheetId], canonicalCellId)
	} else {
		manager.webhooks[canonicalSheetId][canonicalCellId] = webhookUrl
	}
}

func (manager *WebhookDispatcher) GetWebhookUrl(canonicalSheetId string, canonicalCellId string) string {
	manager.mutex.RLock()
	defer manager.mutex.RUnlock()

	return manager.webhooks[canonicalSheetId][canonicalCellId]
}

func (manager *WebhookDispatcher) Notify(canonicalSheetId string, updates []contracts.CellUpdate) {
	commands := manager.resolveCommands(canonicalSheetId, updates)
	if len(commands) == 0 {
		return
	}

	go manager.addToQueue(commands)
}

func (manager *WebhookDispatcher) resolveCommands(canonicalSheetId string, updates []contracts.CellUpdate) []WebhookSendCommand {
	manager.mutex.RLock()
	defer manager.mutex.RUnlock()

	sheetWebhooks, ok := manager.webhooks[canonicalSheetId]
	if !ok {
		return nil
	}

	commands := make([]WebhookSendCommand, 0, len(updates))
	for _, update := range updates {
		if webhook, ok := sheetWebhooks[update.Address]; ok {
			commands = append(commands, WebhookSendCommand{Webhook: webhook, Update: update})
		}
	}

	return commands
}

// addToQueue blocks while the queue is full and must not hold the mutex.
// Commands still waiting when the dispatcher closes are dropped.
func (manager *WebhookDispatcher) addToQueue(commands []WebhookSendCommand) {
	for _, command := range commands {
		select {
		case <-manager.done:
			return
		default:
		}

		select {
		case manager.queue <- command:
		case <-manager.done:
			return
		}
	}
}

func (manager *WebhookDispatcher) Start() {
	for i := 0; i < WebhookWorkersCount; i++ {
		manager.workers.Add(1)
		go manager.runWebhookSenderWorker()
	}
}

// Close stops accepting updates and waits until queued webhooks are sent
func (manager *WebhookDispatcher) Close() {
	manager.closeOnce.Do(func() {
		close(manager.done)
	})

	manager.workers.Wait()
}

func (manager *WebhookDispatcher) runWebhookSenderWorker() {
	defer manager.workers.Done()

	ctx := context.Background()
	for {
		select {
		case command := <-manager.queue:
			manager.deliver(ctx, command)
		case <-manager.done:
			// drain what was queued before close
			for {
				select {
				case command := <-manager.queue:
					manager.deliver(ctx, command)
				default:
					return
				}
			}
		}
	}
}

func (manager *WebhookDispatcher) deliver(ctx context.Context, command WebhookSendCommand) {
	if err := manager.send(command); err != nil {
		alog.Warnf(ctx, "webhook %s for %s!%s: %v", command.Webhook, command.Update.SheetId, command.Update.Address, err)
	}
}

func (manager *WebhookDispatcher) send(command WebhookSendCommand) error {
	payload, err := json.Marshal(command.Update)
	if err != nil {
		return err
	}

	_, err = retry.Retry(webhookAttempts, manager.retrySleep, func() (int, error) {
		response, err := manager.client.Post(command.Webhook, "application/json", bytes.NewReader(payload))
		if err != nil {
			return 0, err
		}
		_ = response.Body.Close()

		if response.StatusCode >= 500 {
			return response.StatusCode, fmt.Errorf("unexpected webhook response HTTP status: %s", response.Status)
		}
		if response.StatusCode >= 300 {
			return response.StatusCode, retry.NewNonRetryableError(
				fmt.Errorf("unexpected webhook response HTTP status: %s", response.Status),
			)
		}
		return response.StatusCode, nil
	})

	return err
}
