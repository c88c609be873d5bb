// seed-import loads the sample data set from a directory of CSV files into
// the database. Files are imported in dependency order inside a single
// transaction, so a bad file leaves the database untouched.
//
// Expected files: category.csv, genre.csv, users.csv, titles.csv,
// genre_title.csv, review.csv, comments.csv. Missing files are skipped.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gorm.io/gorm"

	"reviewhub/database"
	"reviewhub/internal/api/models"
	"reviewhub/internal/config"
)

func main() {
	dataDir := flag.String("data", "static/data", "directory containing the CSV files")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("could not load config", "error", err)
		os.Exit(1)
	}

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("could not connect to database", "error", err)
		os.Exit(1)
	}

	imp := &importer{dir: *dataDir, logger: logger}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := imp.categories(tx); err != nil {
			return fmt.Errorf("category.csv: %w", err)
		}
		if err := imp.genres(tx); err != nil {
			return fmt.Errorf("genre.csv: %w", err)
		}
		if err := imp.users(tx); err != nil {
			return fmt.Errorf("users.csv: %w", err)
		}
		if err := imp.titles(tx); err != nil {
			return fmt.Errorf("titles.csv: %w", err)
		}
		if err := imp.titleGenres(tx); err != nil {
			return fmt.Errorf("genre_title.csv: %w", err)
		}
		if err := imp.reviews(tx); err != nil {
			return fmt.Errorf("review.csv: %w", err)
		}
		if err := imp.comments(tx); err != nil {
			return fmt.Errorf("comments.csv: %w", err)
		}
		return nil
	})
	if err != nil {
		logger.Error("import failed, rolled back", "error", err)
		os.Exit(1)
	}

	logger.Info("import complete")
}

type importer struct {
	dir    string
	logger *slog.Logger

	// The source files key users by integer id while the users table keys
	// by uuid, so author references are remapped during import.
	userIDs map[int64]string
}

// row is one CSV record keyed by column header.
type row map[string]string

func (r row) str(key string) string { return r[key] }

func (r row) int64(key string) (int64, error) {
	v, err := strconv.ParseInt(r[key], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", key, err)
	}
	return v, nil
}

func (r row) int(key string) (int, error) {
	v, err := r.int64(key)
	return int(v), err
}

// time parses the pub_date format used by the sample data.
func (r row) time(key string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, r[key])
	if err != nil {
		return time.Time{}, fmt.Errorf("column %q: %w", key, err)
	}
	return t, nil
}

// forEach streams the named CSV file record by record. A missing file is
// not an error; the data set ships with whichever files it has.
func (imp *importer) forEach(name string, fn func(row) error) error {
	path := filepath.Join(imp.dir, name)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			imp.logger.Warn("file not found, skipping", "file", name)
			return nil
		}
		return err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("reading header: %w", err)
	}

	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		r := make(row, len(header))
		for i, col := range header {
			if i < len(record) {
				r[col] = record[i]
			}
		}
		if err := fn(r); err != nil {
			return err
		}
		count++
	}

	imp.logger.Info("imported", "file", name, "rows", count)
	return nil
}

func (imp *importer) categories(tx *gorm.DB) error {
	return imp.forEach("category.csv", func(r row) error {
		id, err := r.int64("id")
		if err != nil {
			return err
		}
		return tx.Create(&models.Category{
			ID:   id,
			Name: r.str("name"),
			Slug: r.str("slug"),
		}).Error
	})
}

func (imp *importer) genres(tx *gorm.DB) error {
	return imp.forEach("genre.csv", func(r row) error {
		id, err := r.int64("id")
		if err != nil {
			return err
		}
		return tx.Create(&models.Genre{
			ID:   id,
			Name: r.str("name"),
			Slug: r.str("slug"),
		}).Error
	})
}

func (imp *importer) users(tx *gorm.DB) error {
	imp.userIDs = make(map[int64]string)
	return imp.forEach("users.csv", func(r row) error {
		id, err := r.int64("id")
		if err != nil {
			return err
		}
		role := models.Role(r.str("role"))
		if !role.Valid() {
			role = models.RoleUser
		}
		user := models.User{
			Username:  r.str("username"),
			Email:     r.str("email"),
			Role:      role,
			Bio:       r.str("bio"),
			FirstName: r.str("first_name"),
			LastName:  r.str("last_name"),
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		imp.userIDs[id] = user.ID
		return nil
	})
}

func (imp *importer) titles(tx *gorm.DB) error {
	return imp.forEach("titles.csv", func(r row) error {
		id, err := r.int64("id")
		if err != nil {
			return err
		}
		year, err := r.int("year")
		if err != nil {
			return err
		}
		title := models.Title{ID: id, Name: r.str("name"), Year: year}
		if r.str("category") != "" {
			categoryID, err := r.int64("category")
			if err != nil {
				return err
			}
			title.CategoryID = &categoryID
		}
		return tx.Create(&title).Error
	})
}

func (imp *importer) titleGenres(tx *gorm.DB) error {
	return imp.forEach("genre_title.csv", func(r row) error {
		titleID, err := r.int64("title_id")
		if err != nil {
			return err
		}
		genreID, err := r.int64("genre_id")
		if err != nil {
			return err
		}
		return tx.Create(&models.TitleGenre{TitleID: titleID, GenreID: genreID}).Error
	})
}

func (imp *importer) reviews(tx *gorm.DB) error {
	return imp.forEach("review.csv", func(r row) error {
		id, err := r.int64("id")
		if err != nil {
			return err
		}
		titleID, err := r.int64("title_id")
		if err != nil {
			return err
		}
		authorCSV, err := r.int64("author")
		if err != nil {
			return err
		}
		authorID, ok := imp.userIDs[authorCSV]
		if !ok {
			return fmt.Errorf("review %d references unknown user %d", id, authorCSV)
		}
		score, err := r.int("score")
		if err != nil {
			return err
		}
		pubDate, err := r.time("pub_date")
		if err != nil {
			return err
		}
		return tx.Create(&models.Review{
			ID:        id,
			TitleID:   titleID,
			AuthorID:  authorID,
			Text:      r.str("text"),
			Score:     score,
			CreatedAt: pubDate,
		}).Error
	})
}

func (imp *importer) comments(tx *gorm.DB) error {
	return imp.forEach("comments.csv", func(r row) error {
		id, err := r.int64("id")
		if err != nil {
			return err
		}
		reviewID, err := r.int64("review_id")
		if err != nil {
			return err
		}
		authorCSV, err := r.int64("author")
		if err != nil {
			return err
		}
		authorID, ok := imp.userIDs[authorCSV]
		if !ok {
			return fmt.Errorf("comment %d references unknown user %d", id, authorCSV)
		}
		pubDate, err := r.time("pub_date")
		if err != nil {
			return err
		}
		return tx.Create(&models.Comment{
			ID:        id,
			ReviewID:  reviewID,
			AuthorID:  authorID,
			Text:      r.str("text"),
			CreatedAt: pubDate,
		}).Error
	})
}
