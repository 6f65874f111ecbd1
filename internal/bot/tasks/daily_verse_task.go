package tasks

import (
	"context"
	"strings"
	"time"

	"versebot/internal/verse"
)

// newDailyVerseTask creates the scheduled task that delivers the verse of
// the day. The task runs once per hourly tick: it loads all subscribers,
// computes the day's verse once, and dispatches to every subscriber whose
// local time falls in the configured target hour. Because only the hour
// component is compared, delivery is at-most-once per tick per matching
// subscriber, not exactly-once per day.
func newDailyVerseTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "daily_verse")

	return func(ctx context.Context) error {
		subs, err := deps.Store.ListSubscribers(ctx)
		if err != nil {
			log.ErrorContext(ctx, "Failed to load subscribers for delivery tick", "error", err)
			return err
		}
		if len(subs) == 0 {
			log.DebugContext(ctx, "No subscribers, delivery tick is a no-op")
			return nil
		}

		now := deps.now()

		// One selection and one formatting pass per tick, shared by all
		// subscribers on the same calendar day.
		v, err := deps.Selector.SelectOfDay(ctx, now)
		if err != nil {
			log.ErrorContext(ctx, "Failed to select verse of the day", "error", err)
			return err
		}
		if v == nil {
			log.WarnContext(ctx, "No verse available for delivery tick")
			return nil
		}
		message := verse.FormatDaily(v, now)

		targetHour := deps.Config.Scheduler.TargetLocalHour
		sent, failed := 0, 0

		for _, sub := range subs {
			loc, locErr := time.LoadLocation(sub.Timezone)
			if locErr != nil {
				// Unresolvable timezone falls back to UTC rather than
				// failing the subscriber
				log.WarnContext(ctx, "Unresolvable subscriber timezone, using UTC",
					"chat_id", sub.ChatID, "timezone", sub.Timezone)
				loc = time.UTC
			}

			if now.In(loc).Hour() != targetHour {
				continue
			}

			sendCtx, cancel := context.WithTimeout(ctx, deps.Config.Scheduler.SendTimeout)
			sendErr := deps.Sender.SendMessage(sendCtx, sub.ChatID, message, true)
			cancel()

			if sendErr == nil {
				sent++
				continue
			}
			failed++

			if isPermanentSendFailure(sendErr) {
				// Self-heal: the recipient blocked the bot or the chat is
				// gone, so the record would fail every future tick too.
				log.InfoContext(ctx, "Removing unreachable subscriber",
					"chat_id", sub.ChatID, "error", sendErr)
				if _, rmErr := deps.Store.RemoveSubscriber(ctx, sub.ChatID); rmErr != nil {
					log.ErrorContext(ctx, "Failed to remove unreachable subscriber",
						"chat_id", sub.ChatID, "error", rmErr)
				}
				continue
			}

			// Transient failure: keep the subscriber, the next matching
			// tick retries naturally
			log.WarnContext(ctx, "Failed to deliver daily verse",
				"chat_id", sub.ChatID, "error", sendErr)
		}

		log.InfoContext(ctx, "Delivery tick completed",
			"subscribers", len(subs), "sent", sent, "failed", failed)
		return nil
	}
}

// isPermanentSendFailure classifies a send error as a permanently
// unreachable recipient. The Telegram API reports these as free-text
// descriptions; matching on "blocked" and "not found" mirrors the API's
// wording for blocked bots and deleted chats.
func isPermanentSendFailure(err error) bool {
	desc := strings.ToLower(err.Error())
	return strings.Contains(desc, "blocked") || strings.Contains(desc, "not found")
}
