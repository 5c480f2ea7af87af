// cmd/poller/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"homeplate/internal/adapters/out/push"
	"homeplate/internal/application/polling"
	"homeplate/internal/domain/actor"
	chatdom "homeplate/internal/domain/chat"
	orderdom "homeplate/internal/domain/order"
	"homeplate/internal/domain/store"
	"homeplate/internal/domain/user"
	"homeplate/internal/platform/di"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─────────────────────────────────────────────────────────────
	// Env: .env is optional, real env vars win
	// ─────────────────────────────────────────────────────────────
	if err := godotenv.Load(); err != nil {
		log.Printf("[boot] no .env file, using process environment")
	}

	cont, err := di.NewContainer(ctx)
	if err != nil {
		log.Fatalf("[boot] di init failed: %v", err)
	}
	defer cont.Close()

	// ─────────────────────────────────────────────────────────────
	// Viewer identity: which actor's projections this process owns
	// ─────────────────────────────────────────────────────────────
	actorID := os.Getenv("ACTOR_ID")
	if actorID == "" {
		log.Fatal("[boot] ACTOR_ID is required")
	}
	viewer := actor.New(actorID, os.Getenv("ACTOR_NAME"), user.ParseRole(os.Getenv("ACTOR_ROLE")))
	restaurantID := os.Getenv("RESTAURANT_ID") // owner scope
	orderID := os.Getenv("ORDER_ID")           // chat scope (optional)

	manager := polling.NewManager()
	sender := push.NewFCMSender(cont.Messaging, cont.Config.FCMDeviceToken)

	// ─────────────────────────────────────────────────────────────
	// Orders session: one loop, scoped by the viewer's role
	// ─────────────────────────────────────────────────────────────
	fetchOrders := func(ctx context.Context, token string) ([]orderdom.Order, error) {
		ctx = store.WithBearer(ctx, token)
		switch viewer.Role {
		case user.RoleOwner:
			return cont.Orders.ListByRestaurant(ctx, restaurantID)
		case user.RoleCourier:
			return cont.Orders.ListByStatus(ctx, orderdom.StatusReady)
		default:
			return cont.Orders.ListByCustomer(ctx, viewer.ID)
		}
	}
	orderSession := polling.NewSession(
		"orders",
		viewer,
		polling.OrderReconciler(),
		cont.Tokens,
		fetchOrders,
		polling.OrderNotifications,
	)
	orderSession.Start(cont.Config.OrderPollInterval)
	manager.Register(polling.Key("orders", viewer.ID, restaurantID), orderSession)
	go sender.Pump(ctx, orderSession.Notifications())
	log.Printf("[boot] orders session running (role=%s interval=%s)", viewer.Role, cont.Config.OrderPollInterval)

	// ─────────────────────────────────────────────────────────────
	// Chat session: only when watching one order's thread
	// ─────────────────────────────────────────────────────────────
	if orderID != "" {
		fetchChat := func(ctx context.Context, token string) ([]chatdom.Message, error) {
			ctx = store.WithBearer(ctx, token)
			return cont.Chats.ListByOrder(ctx, orderID)
		}
		chatSession := polling.NewSession(
			"messages",
			viewer,
			polling.ChatReconciler(),
			cont.Tokens,
			fetchChat,
			polling.ChatNotifications,
		)
		chatSession.Start(cont.Config.ChatPollInterval)
		manager.Register(polling.Key("messages", viewer.ID, orderID), chatSession)
		go sender.Pump(ctx, chatSession.Notifications())
		log.Printf("[boot] chat session running (order=%s interval=%s)", orderID, cont.Config.ChatPollInterval)
	}

	// ─────────────────────────────────────────────────────────────
	// Shutdown: stop every loop before the clients close
	// ─────────────────────────────────────────────────────────────
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Printf("[boot] shutting down")
	cancel()
	manager.StopAll()
}
