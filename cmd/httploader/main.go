package main

import (
	"encoding/json"
	"flag"
	"log"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/danilovkiri/dk_go_letterfeed/internal/api/rest/modeldto"
)

func randStringBytes(n int) string {
	const letterBytes = "abcdefghijklmnopqrstuvwxyz"
	b := make([]byte, n)
	for i := range b {
		b[i] = letterBytes[rand.Intn(len(letterBytes))]
	}
	return string(b)
}

func main() {
	a := flag.String("a", "http://localhost:8080", "Server address")
	t := flag.String("t", "", "Webhook verification token")
	flag.Parse()
	address := *a
	token := *t

	const register = "/api/user/register"
	const manageFeeds = "/api/user/feeds"
	const webhook = "/api/webhook/inbound"
	const ping = "/ping"
	const iterations = 20

	client := resty.New()
	client.SetRedirectPolicy(resty.RedirectPolicyFunc(func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}))

	// Performing ping loading
	log.Println("Performing ping loading")
	for i := 0; i < iterations; i++ {
		_, err := client.R().Get(address + ping)
		if err != nil {
			log.Fatal(err)
		}
	}
	time.Sleep(1 * time.Second)

	// Performing account registration
	log.Println("Performing account registration")
	credentials := modeldto.RequestUser{
		Email:    randStringBytes(10) + "@example.com",
		Password: randStringBytes(16),
	}
	res, err := client.R().SetHeader("Content-Type", "application/json").SetBody(credentials).Post(address + register)
	if err != nil {
		log.Fatal(err)
	}
	if res.StatusCode() != http.StatusCreated {
		log.Fatal("registration failed with code ", res.StatusCode())
	}

	// Performing feed creation loading
	log.Println("Performing feed creation loading")
	var feedIDs []string
	for i := 0; i < iterations; i++ {
		payload := modeldto.RequestFeed{Name: "Load feed " + strconv.Itoa(i)}
		res, err := client.R().SetHeader("Content-Type", "application/json").SetBody(payload).Post(address + manageFeeds)
		if err != nil {
			log.Fatal(err)
		}
		var feed modeldto.ResponseFeed
		if err := json.Unmarshal(res.Body(), &feed); err != nil {
			log.Fatal(err)
		}
		feedIDs = append(feedIDs, feed.ID)
	}
	time.Sleep(1 * time.Second)

	// Performing webhook ingestion loading
	log.Println("Performing webhook ingestion loading")
	for i, feedID := range feedIDs {
		event := modeldto.InboundEvent{
			Event:     "email.received",
			Timestamp: time.Now().Unix(),
			Email: modeldto.InboundEmail{
				ID:        "load-" + strconv.Itoa(i) + "-" + randStringBytes(8),
				Recipient: feedID + "@mail.letterfeed.local",
				Subject:   "Issue " + strconv.Itoa(i),
				From: modeldto.InboundFrom{
					Text:      "Loader <loader@example.com>",
					Addresses: []modeldto.InboundAddress{{Address: "loader@example.com", Name: "Loader"}},
				},
				ParsedData: modeldto.InboundParsedData{
					TextBody: "plain text body " + strconv.Itoa(i),
					HTMLBody: `<p>hello</p><a href="https://news.example/` + strconv.Itoa(i) + `">View online</a>`,
				},
			},
		}
		_, err := client.R().SetHeader("Content-Type", "application/json").SetHeader("X-Webhook-Token", token).SetBody(event).Post(address + webhook)
		if err != nil {
			log.Fatal(err)
		}
	}
	time.Sleep(1 * time.Second)

	// Performing feed reading loading
	log.Println("Performing feed reading loading")
	for _, feedID := range feedIDs {
		for _, suffix := range []string{"/rss", "/atom", ""} {
			_, err := client.R().Get(address + "/feeds/" + feedID + suffix)
			if err != nil {
				log.Fatal(err)
			}
		}
	}
	time.Sleep(1 * time.Second)

	// Performing feed deletion loading
	log.Println("Performing feed deletion loading")
	for _, feedID := range feedIDs {
		_, err := client.R().Delete(address + manageFeeds + "/" + feedID)
		if err != nil {
			log.Fatal(err)
		}
	}
	log.Println("Loading finished")
}
