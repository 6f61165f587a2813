package gmail

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"pickterm/internal/model"
	"pickterm/internal/util"

	gmailv1 "google.golang.org/api/gmail/v1"
)

// FetchSenderHeaders pages through INBOX message metadata and returns the
// raw From header of every message. Metadata fetches run on a bounded worker
// pool; the function respects ctx for cancelation. maxMessages caps the scan
// (0 means no cap).
func FetchSenderHeaders(ctx context.Context, svc *gmailv1.Service, maxMessages int64) ([]string, error) {
	user := "me"

	list := svc.Users.Messages.List(user).
		LabelIds("INBOX").
		MaxResults(500) // page size, not an overall cap

	jobs := make(chan string, 1000)
	results := make(chan string, 1000)
	errs := make(chan error, 1)

	workerCount := 16
	var wg sync.WaitGroup
	wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go func() {
			defer wg.Done()
			for id := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}
				msg, err := svc.Users.Messages.Get(user, id).
					Format("metadata").
					MetadataHeaders("From").
					Do()
				if err != nil {
					select {
					case errs <- err:
					default:
					}
					continue
				}
				for _, h := range msg.Payload.Headers {
					if strings.EqualFold(h.Name, "From") {
						results <- h.Value
						break
					}
				}
			}
		}()
	}

	var headers []string
	var collectWG sync.WaitGroup
	collectWG.Add(1)
	go func() {
		defer collectWG.Done()
		for h := range results {
			headers = append(headers, h)
		}
	}()

	finish := func() ([]string, error) {
		close(jobs)
		wg.Wait()
		close(results)
		collectWG.Wait()
		select {
		case err := <-errs:
			return headers, err
		default:
			return headers, nil
		}
	}

	var queued int64
	pageToken := ""
	for {
		select {
		case <-ctx.Done():
			hs, _ := finish()
			return hs, ctx.Err()
		default:
		}

		call := list
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Do()
		if err != nil {
			hs, _ := finish()
			return hs, fmt.Errorf("list messages: %w", err)
		}

		for _, m := range resp.Messages {
			if maxMessages > 0 && queued >= maxMessages {
				return finish()
			}
			select {
			case <-ctx.Done():
				hs, _ := finish()
				return hs, ctx.Err()
			case jobs <- m.Id:
				queued++
			}
		}

		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}

	return finish()
}

// CollectSenders turns raw From headers into roster records: addresses are
// normalized, deduped, sorted, and seeded as unselected candidates. Headers
// with no parsable address are skipped.
func CollectSenders(headers []string) []model.RawRecipient {
	seen := make(map[string]bool)
	var recs []model.RawRecipient
	for _, h := range headers {
		email := util.NormalizeAddress(h)
		if email == "" || seen[email] {
			continue
		}
		seen[email] = true
		recs = append(recs, model.RawRecipient{Email: email})
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].Email < recs[j].Email })
	return recs
}

// FetchSenders is the full import path: list INBOX metadata, normalize, and
// aggregate into roster records.
func FetchSenders(ctx context.Context, svc *gmailv1.Service, maxMessages int64) ([]model.RawRecipient, error) {
	headers, err := FetchSenderHeaders(ctx, svc, maxMessages)
	if err != nil {
		return nil, err
	}
	return CollectSenders(headers), nil
}
