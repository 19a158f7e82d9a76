package main

import (
	"strings"
	"testing"
)

func TestReminderSender_BeforeBotIsSet(t *testing.T) {
	sender := &reminderSender{}

	err := sender.deliver("42", "too early")
	if err == nil {
		t.Fatal("expected an error when no session is set")
	}
	if !strings.Contains(err.Error(), "not ready") {
		t.Errorf("err = %v", err)
	}
}
