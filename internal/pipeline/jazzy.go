package pipeline

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/go-git/go-git/v5"

	"git.home.luguber.info/inful/doccbuilder/internal/logfields"
	"git.home.luguber.info/inful/doccbuilder/internal/process"
)

// JazzyCommand builds the jazzy invocation for a combined SourceKitten file.
// head is the commit used for source links; it is ignored when empty.
func JazzyCommand(st *State, head string) process.Command {
	cfg := st.Config
	args := []string{
		"--sourcekitten-sourcefile", st.CombinedPath,
		"--output", st.OutputDir,
		"--module", st.Package.Name,
	}
	if v, ok := cfg.Legacy.ModuleVersion.Get(); ok {
		args = append(args, "--module-version", v)
	}
	if svc, ok := cfg.Options.SourceRepository.Service.Get(); ok && svc.Type == "github" {
		repo := RepositoryURL(svc.BaseURL)
		args = append(args, "--github_url", repo)
		if head != "" {
			args = append(args, "--github-file-prefix", repo+"/tree/"+head)
		}
	}
	args = append(args, cfg.Options.OtherArguments...)
	return process.Command{Name: "jazzy", Args: args, Dir: cfg.PackagePath}
}

// RepositoryURL strips a /blob/<ref> or /tree/<ref> suffix from a GitHub
// source link base.
func RepositoryURL(base string) string {
	for _, marker := range []string{"/blob/", "/tree/"} {
		if i := strings.Index(base, marker); i >= 0 {
			return base[:i]
		}
	}
	return strings.TrimSuffix(base, "/")
}

// ResolveHead returns the commit checked out in the repository containing
// dir, or "" when dir is not inside a git work tree.
func ResolveHead(dir string) string {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if !errors.Is(err, git.ErrRepositoryNotExists) {
			slog.Debug("Unable to open repository", logfields.Path(dir), logfields.Error(err))
		}
		return ""
	}
	ref, err := repo.Head()
	if err != nil {
		slog.Debug("Unable to read HEAD", logfields.Path(dir), logfields.Error(err))
		return ""
	}
	return ref.Hash().String()
}
