package jobs

import (
	"fmt"
	"log"

	"messagely/notifications"
	"messagely/store"
)

type DigestJob struct {
	messages store.MessageStore
}

func NewDigestJob(messages store.MessageStore) *DigestJob {
	return &DigestJob{messages: messages}
}

// SendUnreadDigests mails every user with unread messages a count of what
// is waiting for them. Scheduled hourly from main.
func (j *DigestJob) SendUnreadDigests() {
	log.Println("Running job: SendUnreadDigests...")

	counts, err := j.messages.UnreadCounts()
	if err != nil {
		log.Printf("🔥 Failed to aggregate unread messages: %v", err)
		return
	}

	for _, uc := range counts {
		word := "messages"
		if uc.Count == 1 {
			word = "message"
		}
		subject := fmt.Sprintf("You have %d unread %s", uc.Count, word)
		body := fmt.Sprintf("<p>Hi %s,</p><p>You have %d unread %s waiting for you.</p>", uc.FirstName, uc.Count, word)
		notifications.SendEmail(uc.FirstName, uc.Email, subject, body)
	}

	log.Printf("SendUnreadDigests finished: %d recipients notified", len(counts))
}
