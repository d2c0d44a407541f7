package domain

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to WorkItemStatus
		want     bool
	}{
		{StatusDraft, StatusDraft, false},
		{StatusDraft, StatusActive, true},
		{StatusDraft, StatusCompleted, false},
		{StatusActive, StatusDraft, true},
		{StatusActive, StatusActive, false},
		{StatusActive, StatusCompleted, true},
		{StatusCompleted, StatusDraft, false},
		{StatusCompleted, StatusActive, true},
		{StatusCompleted, StatusCompleted, false},
	}

	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []WorkItemStatus{StatusDraft, StatusActive, StatusCompleted} {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%s) = false, want true", s)
		}
	}

	for _, s := range []WorkItemStatus{"", "draft", "ARCHIVED", "DONE"} {
		if ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = true, want false", s)
		}
	}
}

func TestAllowedTransitions(t *testing.T) {
	if got := AllowedTransitions(StatusActive); len(got) != 2 {
		t.Errorf("AllowedTransitions(ACTIVE) = %v, want two statuses", got)
	}
	if got := AllowedTransitions(StatusDraft); len(got) != 1 || got[0] != StatusActive {
		t.Errorf("AllowedTransitions(DRAFT) = %v, want [ACTIVE]", got)
	}
}

func TestBroadcastEvent(t *testing.T) {
	cases := []struct {
		action AuditAction
		event  string
		ok     bool
	}{
		{ActionWorkItemStatusChanged, "work-item:status-changed", true},
		{ActionWorkItemDocLinked, "work-item:document-linked", true},
		{ActionWorkItemDocUnlinked, "work-item:document-unlinked", true},
		{ActionDocumentUploaded, "document:uploaded", true},
		{ActionDocumentDeleted, "document:deleted", true},
		{ActionMemberInvited, "workspace:member-invited", true},
		{ActionMemberRoleUpdated, "workspace:member-updated", true},
		{ActionMemberRemoved, "workspace:member-removed", true},
		{ActionWorkspaceCreated, "", false},
		{ActionWorkItemCreated, "", false},
		{ActionEntityUpdated, "", false},
	}

	for _, tc := range cases {
		event, ok := BroadcastEvent(tc.action)
		if ok != tc.ok || event != tc.event {
			t.Errorf("BroadcastEvent(%s) = (%q, %v), want (%q, %v)", tc.action, event, ok, tc.event, tc.ok)
		}
	}
}
