package main

import (
	"fmt"
	"os"

	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/catalog"
	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/domain/rotation"
	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/entity"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/storage"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) validateCatalog(cctx *cli.Context) error {
	var source catalog.Source
	if path := cctx.Args().First(); path != "" {
		source = catalog.FileSource{Path: path}
	} else {
		var err error
		source, err = catalog.NewSource(xcontext.Configs(s.ctx).Catalog)
		if err != nil {
			return err
		}
	}

	questCatalog := catalog.New(source)
	if err := questCatalog.Load(s.ctx); err != nil {
		return err
	}

	for _, category := range entity.Categories {
		quests := questCatalog.ByCategory(category)
		fmt.Printf("%s (%d)\n", category, len(quests))
		for _, q := range quests {
			fmt.Printf("  %s\t%s\t%s\t%d\n", q.ID, q.Trigger.Type, q.Name, q.Reward)
		}
	}

	return nil
}

func (s *srv) publishCatalog(cctx *cli.Context) error {
	path := cctx.Args().First()
	if path == "" {
		return fmt.Errorf("missing catalog path")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	// Never publish a document the workers would refuse.
	if _, err := catalog.Parse(data); err != nil {
		return err
	}

	cfg := xcontext.Configs(s.ctx).Catalog
	s3Storage, err := storage.NewS3Storage(cfg)
	if err != nil {
		return err
	}

	err = s3Storage.Upload(s.ctx, &storage.UploadObject{
		Bucket: cfg.Bucket,
		Key:    cfg.Key,
		Mime:   "application/yaml",
		Data:   data,
	})
	if err != nil {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Published %s to s3://%s/%s", path, cfg.Bucket, cfg.Key)
	return nil
}

func (s *srv) resetRotation(cctx *cli.Context) error {
	if cctx.NArg() == 0 {
		return fmt.Errorf("missing category")
	}

	s.loadRedisClient()
	s.loadRepos()
	selector := rotation.NewSelector(s.rotationRepo)

	for _, name := range cctx.Args().Slice() {
		category, err := entity.ParseCategory(name)
		if err != nil {
			return err
		}

		if err := selector.Reset(s.ctx, category); err != nil {
			return err
		}

		xcontext.Logger(s.ctx).Infof("Rotation of %s is reset", category)
	}

	return nil
}
