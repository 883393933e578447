// smoke-submit exercises the full submission path against live
// services: sign in, stage attachments from a directory, run the
// pipeline and read the resulting timeline back.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"blushhush.app/internal/attach"
	"blushhush.app/internal/auth"
	"blushhush.app/internal/config"
	"blushhush.app/internal/gateway"
	"blushhush.app/internal/obs"
	"blushhush.app/internal/project"
	"blushhush.app/internal/storage"
	"blushhush.app/internal/update"
)

func main() {
	log.SetFlags(0)
	_ = godotenv.Load()

	var (
		email     = flag.String("email", "", "Manager email")
		password  = flag.String("password", "", "Manager password")
		projectID = flag.String("project", "", "Project id to update")
		dir       = flag.String("dir", "", "Directory with image attachments (optional)")
		title     = flag.String("title", "Smoke update", "Update title")
		desc      = flag.String("desc", "Automated smoke submission.", "Update description")
		progress  = flag.Int("progress", 50, "New progress percentage")
	)
	flag.Parse()

	if *email == "" || *password == "" || *projectID == "" {
		log.Fatal("usage: smoke-submit -email ... -password ... -project ... [-dir ...]")
	}

	obs.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.PGDSN == "" {
		log.Fatal("BLUSH_PG_DSN is required: the pipeline writes records and progress to PostgreSQL")
	}

	db, err := sql.Open("pgx", cfg.PGDSN)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	gw := gateway.NewClient(cfg.SupabaseURL, cfg.SupabaseAnonKey)
	session, err := gw.SignIn(ctx, *email, *password)
	if err != nil {
		log.Fatalf("sign in: %v", err)
	}
	ctx = auth.ContextWithToken(ctx, session.AccessToken)
	ctx = auth.ContextWithIdentity(ctx, session.IdentityID, auth.RoleManager)

	stager := attach.NewStager()
	if *dir != "" {
		assets, err := attach.DirPicker{Dir: *dir}.Pick(ctx, attach.MaxStaged)
		if err != nil {
			log.Fatalf("pick attachments: %v", err)
		}
		staged := stager.Add(assets...)
		log.Printf("staged %d attachment(s)", staged)
	}

	projects := project.NewPGStore(db)
	updates := update.NewPGStore(db)

	before, err := projects.Find(ctx, *projectID)
	if err != nil {
		log.Fatalf("find project: %v", err)
	}

	objects := storage.NewClient(cfg.SupabaseURL, cfg.SupabaseAnonKey)
	uploads := update.NewCoordinator(objects, attach.FileReader{},
		update.WithBucket(cfg.StorageBucket))
	pipeline := update.NewPipeline(uploads, updates, projects)

	rec, err := pipeline.Submit(ctx, update.SubmitInput{
		ProjectID:   *projectID,
		Title:       *title,
		Description: *desc,
		Progress:    *progress,
		Assets:      stager.List(),
	})
	if err != nil {
		if step, ok := update.FailedStep(err); ok {
			log.Fatalf("submit failed at step %s: %v", step, err)
		}
		log.Fatalf("submit: %v", err)
	}

	timeline, err := update.NewService(updates, projects).Timeline(ctx, *projectID)
	if err != nil {
		log.Fatalf("timeline: %v", err)
	}
	if len(timeline) == 0 || timeline[len(timeline)-1].Title != "Project Started" {
		log.Fatal("timeline missing the project start marker")
	}

	after, err := projects.Find(ctx, *projectID)
	if err != nil {
		log.Fatalf("reload project: %v", err)
	}
	if after.Progress != *progress {
		log.Fatalf("progress not applied: was %d, now %d, want %d",
			before.Progress, after.Progress, *progress)
	}

	fmt.Printf("✅ submission smoke test passed: update=%s images=%d progress=%d→%d timeline=%d\n",
		rec.ID, len(rec.Images), before.Progress, after.Progress, len(timeline))
}
