package skill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixtureTree(t *testing.T, root string) {
	t.Helper()
	writeSkillFile(t, root, "email/send.md", `---
name: "email.send"
description: "Send an email"
handler: "Handlers.Email.Send"
tags: [write]
---
Send an email.
`)
	writeSkillFile(t, root, "email/search.md", `---
name: "email.search"
description: "Search the mailbox"
---
Search messages.
`)
	writeSkillFile(t, root, "email/SKILL.md", `---
domain: "email"
description: "Email skills"
---
Email domain documentation.
`)
	writeSkillFile(t, root, "calendar/list.md", `---
name: "calendar.list"
description: "List calendar events"
---
List events.
`)
	writeSkillFile(t, root, "calendar/broken.md", "no front matter here\n")
	writeSkillFile(t, root, "calendar/reserved.md", `---
name: "calendar.all"
description: "Reserved name"
---
Should be dropped.
`)
	// Non-markdown files are ignored entirely
	writeSkillFile(t, root, "calendar/notes.txt", "scratch")
}

func TestLoadAll(t *testing.T) {
	root := t.TempDir()
	writeFixtureTree(t, root)

	defs, indexes, err := LoadAll(root, staticResolver{"Handlers.Email.Send": true})
	require.NoError(t, err)

	var names []string
	for _, def := range defs {
		names = append(names, def.Name)
	}
	assert.Equal(t, []string{"calendar.list", "email.search", "email.send"}, names)

	require.Len(t, indexes, 1)
	assert.Equal(t, "email", indexes[0].Domain)
}

func TestLoadAll_Idempotent(t *testing.T) {
	root := t.TempDir()
	writeFixtureTree(t, root)

	first, firstIdx, err := LoadAll(root, nil)
	require.NoError(t, err)
	second, secondIdx, err := LoadAll(root, nil)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, *first[i], *second[i])
	}
	require.Equal(t, len(firstIdx), len(secondIdx))
	for i := range firstIdx {
		assert.Equal(t, *firstIdx[i], *secondIdx[i])
	}
}

func TestLoadAll_EmptyRoot(t *testing.T) {
	root := t.TempDir()

	defs, indexes, err := LoadAll(root, nil)
	require.NoError(t, err)
	assert.Empty(t, defs)
	assert.Empty(t, indexes)
}

func TestLoadAll_MissingRoot(t *testing.T) {
	_, _, err := LoadAll(t.TempDir()+"/does-not-exist", nil)
	assert.Error(t, err)
}
