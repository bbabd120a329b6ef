package chat

import "testing"

func TestTranscript_RemoveAndNotify(t *testing.T) {
	transcript := NewTranscript()

	var notified []Entry
	transcript.OnAppend(func(e Entry) { notified = append(notified, e) })

	transcript.AddUser("hello")
	thinking := transcript.AddThinking()
	transcript.AddBot("hi")

	if !transcript.Remove(thinking.ID) {
		t.Fatal("expected thinking entry to be removed")
	}
	if transcript.Remove(thinking.ID) {
		t.Error("second remove should report false")
	}

	entries := transcript.Entries()
	if len(entries) != 2 || entries[0].Text != "hello" || entries[1].Text != "hi" {
		t.Errorf("unexpected entries %+v", entries)
	}
	if len(notified) != 2 {
		t.Errorf("pending entries must not be announced, got %d notifications", len(notified))
	}
}
