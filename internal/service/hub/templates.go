package hub

import (
	models "devcloud/internal/domain/models/hub"
)

// templates.go - declarative file sets synthesized by drive operations.
//
// Template items carry placeholder ids ("tpl:<key>") and may reference each
// other through ParentID. assignIDs swaps placeholders for real ids, so the
// templates stay pure and testable on their own.

const templateIDPrefix = "tpl:"

const folderSize = "0 KB"

func templateFile(key, backendID, name, content, date string, parent *string) models.FileItem {
	return models.FileItem{
		ID:        templateIDPrefix + key,
		Name:      name,
		Kind:      models.KindFile,
		Size:      FormatContentSize(content),
		Modified:  date,
		BackendID: backendID,
		ParentID:  parent,
		Content:   &content,
	}
}

// StarterFiles is the fixed file set of a freshly added local drive
func StarterFiles(backendID, date string) []models.FileItem {
	return []models.FileItem{
		templateFile("welcome", backendID, "Welcome.txt",
			"Welcome to your new local drive.\nUpload files or sync a cloud service to fill it.\n", date, nil),
		templateFile("notes", backendID, "notes.md",
			"# Notes\n\n- \n", date, nil),
	}
}

// ClonedRepoFiles is the synthesized checkout of a cloned repository.
// It contains one folder ("src") and one file inside it.
func ClonedRepoFiles(backendID, repoName, repoURL, date string) []models.FileItem {
	srcID := templateIDPrefix + "src"
	return []models.FileItem{
		templateFile("readme", backendID, readmeName,
			"# "+repoName+"\n\nCloned from "+repoURL+"\n", date, nil),
		templateFile("gitignore", backendID, ".gitignore",
			"node_modules/\n.env\ndist/\n", date, nil),
		templateFile("license", backendID, "LICENSE",
			"MIT License\n", date, nil),
		{
			ID:        srcID,
			Name:      "src",
			Kind:      models.KindFolder,
			Size:      folderSize,
			Modified:  date,
			BackendID: backendID,
		},
		templateFile("main", backendID, "main.go",
			"package main\n\nfunc main() {}\n", date, &srcID),
	}
}

// assignIDs returns copies of items with placeholder ids replaced by fresh
// ones. Parent references to placeholders follow their target; any other
// parent reference is kept as is.
func assignIDs(items []models.FileItem, newID func() string) []models.FileItem {
	ids := make(map[string]string, len(items))
	for _, item := range items {
		ids[item.ID] = newID()
	}

	out := make([]models.FileItem, len(items))
	for i, item := range items {
		item.ID = ids[item.ID]
		if item.ParentID != nil {
			if id, ok := ids[*item.ParentID]; ok {
				item.ParentID = &id
			}
		}
		out[i] = item
	}
	return out
}
