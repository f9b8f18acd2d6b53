// Package policy is the single authorization module of the service. Every
// mutating handler asks it before touching a record; there is no row-level
// enforcement below this layer, and hiding actions in a client UI is never a
// substitute for these checks.
package policy

import (
	"github.com/Lukiyanto/cisaroni-news/model"
)

// Action enumerates the capabilities a handler can ask about.
type Action string

const (
	ActionViewAny     Action = "viewAny"
	ActionView        Action = "view"
	ActionCreate      Action = "create"
	ActionUpdate      Action = "update"
	ActionDelete      Action = "delete"
	ActionDeleteAny   Action = "deleteAny"
	ActionRestore     Action = "restore"
	ActionForceDelete Action = "forceDelete"
	ActionApprove     Action = "approve"
	ActionReject      Action = "reject"
)

// Can dispatches on the target's type. target may be nil for actions that do
// not concern a particular record (create, viewAny). Unknown combinations
// deny.
func Can(actor *model.User, action Action, target interface{}) bool {
	if actor == nil {
		return false
	}
	switch t := target.(type) {
	case *model.Article:
		return canArticle(actor, action, t)
	case *model.Comment:
		return canComment(actor, action, t)
	case *model.Tag:
		return canTag(actor, action)
	case *model.Category:
		return canCategory(actor, action)
	case *model.Media:
		return canMedia(actor, action, t)
	case *model.NewsletterSubscriber:
		return canSubscriber(actor, action)
	case *model.User:
		return canUser(actor, action)
	}
	return false
}

func canArticle(actor *model.User, action Action, article *model.Article) bool {
	switch action {
	case ActionViewAny, ActionCreate:
		return actor.HasAnyRole()
	case ActionView, ActionUpdate:
		return actor.IsEditor() || article.UserID == actor.Id
	case ActionDelete:
		// Admins delete anything; editors and authors only their own.
		return actor.IsAdmin() ||
			(actor.OnlyEditor() && article.UserID == actor.Id) ||
			article.UserID == actor.Id
	case ActionDeleteAny, ActionRestore, ActionForceDelete:
		return actor.IsAdmin()
	}
	return false
}

func canComment(actor *model.User, action Action, comment *model.Comment) bool {
	switch action {
	case ActionViewAny:
		return actor.IsEditor()
	case ActionCreate:
		// Any authenticated user may comment; the result always lands in
		// pending regardless of who wrote it.
		return true
	case ActionView, ActionUpdate, ActionDelete:
		return actor.IsEditor() || isCommentOwner(actor, comment)
	case ActionApprove, ActionReject:
		// Admins moderate at any state; a plain editor only while the
		// comment is still pending.
		if actor.IsAdmin() {
			return true
		}
		return actor.OnlyEditor() && comment.IsPending()
	case ActionRestore, ActionForceDelete:
		return actor.IsAdmin()
	}
	return false
}

func isCommentOwner(actor *model.User, comment *model.Comment) bool {
	return comment.UserID != nil && *comment.UserID == actor.Id
}

func canTag(actor *model.User, action Action) bool {
	switch action {
	case ActionViewAny, ActionView, ActionCreate, ActionUpdate:
		return actor.IsEditor()
	case ActionDelete, ActionRestore, ActionForceDelete:
		return actor.IsAdmin()
	}
	return false
}

// Categories follow the same coarse rules as tags: editor-or-admin for
// read/write, admin for destructive actions.
func canCategory(actor *model.User, action Action) bool {
	return canTag(actor, action)
}

func canMedia(actor *model.User, action Action, media *model.Media) bool {
	switch action {
	case ActionViewAny:
		return actor.IsEditor()
	case ActionCreate:
		return actor.HasAnyRole()
	case ActionView, ActionUpdate, ActionDelete:
		return actor.IsEditor() || media.UserID == actor.Id
	case ActionRestore, ActionForceDelete:
		return actor.IsAdmin()
	}
	return false
}

func canSubscriber(actor *model.User, action Action) bool {
	switch action {
	case ActionViewAny, ActionView:
		return actor.IsEditor()
	case ActionCreate, ActionUpdate, ActionDelete, ActionRestore, ActionForceDelete:
		return actor.IsAdmin()
	}
	return false
}

// User management is admin territory end to end.
func canUser(actor *model.User, action Action) bool {
	switch action {
	case ActionViewAny, ActionView, ActionCreate, ActionUpdate, ActionDelete, ActionRestore, ActionForceDelete:
		return actor.IsAdmin()
	}
	return false
}
