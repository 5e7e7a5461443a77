package ews

import (
	"github.com/diwise/ews-client/pkg/ews/tree"
)

// FolderID refers to a folder either by its id and change key or by one of
// the well known names such as "calendar" or "tasks"
type FolderID struct {
	ID            string
	ChangeKey     string
	Distinguished string
	Mailbox       string
}

func DistinguishedFolder(name string) FolderID {
	return FolderID{Distinguished: name}
}

func (f FolderID) IsDistinguished() bool {
	return f.Distinguished != ""
}

func (f FolderID) Node() tree.Node {
	if f.IsDistinguished() {
		n := tree.T("DistinguishedFolderId").WithAttr("Id", f.Distinguished)
		if f.Mailbox != "" {
			n = n.Append(tree.T("Mailbox", tree.Text(tree.Types, "EmailAddress", f.Mailbox)))
		}
		return n
	}

	n := tree.T("FolderId").WithAttr("Id", f.ID)
	if f.ChangeKey != "" {
		n = n.WithAttr("ChangeKey", f.ChangeKey)
	}
	return n
}

// ItemID is the opaque identity of an item together with the version token
// the server uses to detect concurrent changes
type ItemID struct {
	ID        string
	ChangeKey string
}

func (i ItemID) Node() tree.Node {
	n := tree.T("ItemId").WithAttr("Id", i.ID)
	if i.ChangeKey != "" {
		n = n.WithAttr("ChangeKey", i.ChangeKey)
	}
	return n
}

// ItemIDFrom reads the ItemId child of an item element
func ItemIDFrom(item tree.Node) (ItemID, bool) {
	id, ok := item.Lookup([]string{"ItemId", "@Id"})
	if !ok {
		return ItemID{}, false
	}

	changeKey, _ := item.Lookup([]string{"ItemId", "@ChangeKey"})

	return ItemID{ID: id, ChangeKey: changeKey}, true
}
