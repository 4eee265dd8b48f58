package workshop

import "path/filepath"

// contentSubdir is where steamcmd places workshop items below the forced install dir
var contentSubdir = filepath.Join("steamapps", "workshop", "content")

// Task describes one steamcmd invocation and where its output ends up
type Task struct {
	AppID      string
	WorkshopID string
	ToolPath   string
	Args       []string
	SourceDir  string // staged download produced by steamcmd
	DestDir    string // final location under the target dir
}

// BuildTask creates the task for a single workshop item
func BuildTask(appID, workshopID, steamCMDPath, stagingDir, targetDir string) Task {
	return Task{
		AppID:      appID,
		WorkshopID: workshopID,
		ToolPath:   steamCMDPath,
		Args: []string{
			"+force_install_dir", stagingDir,
			"+login", "anonymous",
			"+workshop_download_item", appID, workshopID, "validate",
			"+quit",
		},
		SourceDir: filepath.Join(stagingDir, contentSubdir, appID, workshopID),
		DestDir:   filepath.Join(targetDir, workshopID),
	}
}

// BuildTasks creates tasks for every workshop id in the list, preserving order
func BuildTasks(list *ModList, steamCMDPath, stagingDir, targetDir string) []Task {
	tasks := make([]Task, 0, len(list.WorkshopIDs))
	for _, id := range list.WorkshopIDs {
		tasks = append(tasks, BuildTask(list.AppID, id, steamCMDPath, stagingDir, targetDir))
	}
	return tasks
}
