package main

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"log"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/tienmou/line-roster-bot/internal/adapters/httpline"
	"github.com/tienmou/line-roster-bot/internal/adapters/line"
	"github.com/tienmou/line-roster-bot/internal/app/service"
	"github.com/tienmou/line-roster-bot/internal/infra/config"
	"github.com/tienmou/line-roster-bot/internal/infra/storage"
)

// Lambda variant of the webhook ingress, for deployments without a
// long-running bot process. Same event routing as internal/adapters/httpline.

var (
	channelSecret string
	web           *httpline.Server
	dedup         *storage.DedupRepo
)

func init() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	cfg := config.Load()
	channelSecret = cfg.ChannelSecret

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := storage.Open(ctx, cfg.DatabaseURL, storage.WithMaxConns(4, 2))
	if err != nil {
		log.Fatal(err)
	}
	if err := storage.Migrate(db); err != nil {
		log.Fatal("migrate:", err)
	}

	playersRepo := storage.NewPlayerRepo(db)
	leaveLogRepo := storage.NewLeaveLogRepo(db)
	dedup = storage.NewDedupRepo(db)

	lc := line.New(cfg.ChannelAccessToken)
	rosterSvc := service.NewRosterService(playersRepo, leaveLogRepo, cfg.LIFFURL)
	memberSvc := service.NewMemberService(lc, playersRepo)
	eventsSvc := service.NewEventsService(lc, playersRepo, cfg.LIFFURL)
	dispatcher := service.NewDispatcher(rosterSvc, memberSvc)

	web = httpline.New(cfg.ChannelSecret, dispatcher, eventsSvc, lc)
}

func signatureHeader(req events.APIGatewayV2HTTPRequest) string {
	for _, k := range []string{"x-line-signature", "X-Line-Signature"} {
		if v := req.Headers[k]; v != "" {
			return v
		}
	}
	return ""
}

func handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	body := []byte(req.Body)
	if req.IsBase64Encoded {
		dec, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return events.APIGatewayV2HTTPResponse{StatusCode: 400, Body: "invalid base64"}, nil
		}
		body = dec
	}

	if !line.ValidateSignature(channelSecret, body, signatureHeader(req)) {
		log.Println("auth: invalid signature")
		return events.APIGatewayV2HTTPResponse{StatusCode: 403, Body: "forbidden"}, nil
	}

	// Suppress exact redeliveries; the leave reactor would otherwise log a
	// sentinel row per delivery.
	sum := sha256.Sum256(body)
	dctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	fresh, err := dedup.Insert(dctx, hex.EncodeToString(sum[:]))
	cancel()
	if err != nil {
		log.Println("dedup insert:", err)
	} else if !fresh {
		return events.APIGatewayV2HTTPResponse{StatusCode: 200, Body: `{"ok":true}`}, nil
	}

	var payload line.WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return events.APIGatewayV2HTTPResponse{StatusCode: 400, Body: "invalid payload"}, nil
	}

	for _, ev := range payload.Events {
		if err := web.HandleEvent(ctx, ev); err != nil {
			log.Printf("event %s failed: %v", ev.Type, err)
			return events.APIGatewayV2HTTPResponse{StatusCode: 500, Body: "internal error"}, nil
		}
	}

	return events.APIGatewayV2HTTPResponse{
		StatusCode: 200,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       `{"ok":true}`,
	}, nil
}

func main() { lambda.Start(handler) }
