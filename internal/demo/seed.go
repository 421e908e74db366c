package demo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ztacole/BacaDong/internal/entities"
	"github.com/ztacole/BacaDong/internal/logging"
)

// SeedResult counts the rows a Seed call created.
type SeedResult struct {
	Categories int
	Books      int
	Chapters   int
	Views      int
	Skipped    bool
}

type sampleView struct {
	member string
	rating *int
}

type sampleBook struct {
	book     entities.Book
	category string
	chapters []entities.BookContent
	views    []sampleView
}

// SampleCategories are created before any book.
var SampleCategories = []string{"Fiksi", "Sejarah", "Sains", "Biografi"}

func rated(v int) *int {
	return &v
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func sampleBooks() []sampleBook {
	return []sampleBook{
		{
			category: "Fiksi",
			book: entities.Book{
				Title:       "Siti Nurbaya",
				Author:      "Marah Rusli",
				Publisher:   "Balai Pustaka",
				PublishDate: date(1922, time.January, 1),
				Synopsis: "Kisah Samsulbahri dan Siti Nurbaya di Padang, dua kekasih yang dipisahkan oleh utang " +
					"keluarga dan adat. Datuk Meringgih menuntut Siti sebagai pelunas utang ayahnya.",
			},
			chapters: []entities.BookContent{
				{Position: 1, Title: "Pulang dari Sekolah", Content: "Kira-kira pukul satu siang, kelihatan dua orang anak muda, " +
					"seorang laki-laki dan seorang perempuan, berjalan pulang dari sekolah di bawah pohon ketapang yang rindang."},
				{Position: 2, Title: "Datuk Meringgih", Content: "Saudagar kaya yang kikir itu mulai menaruh dendam."},
			},
			views: []sampleView{{"user", rated(5)}, {"admin", rated(4)}, {"admin", nil}},
		},
		{
			category: "Fiksi",
			book: entities.Book{
				Title:       "Salah Asuhan",
				Author:      "Abdoel Moeis",
				Publisher:   "Balai Pustaka",
				PublishDate: date(1928, time.January, 1),
				Synopsis: "Hanafi, pemuda Minangkabau berpendidikan Belanda, memandang rendah bangsanya sendiri " +
					"dan menikahi Corrie du Bussee, sebuah pilihan yang membawanya pada keterasingan.",
			},
			chapters: []entities.BookContent{
				{Position: 1, Title: "Bermain Tenis", Content: "Di lapangan tenis yang dilindungi pohon-pohon ketapang, " +
					"dua orang muda sedang bermain bola dengan riang, tidak mengindahkan panas matahari petang itu."},
			},
			views: []sampleView{{"user", rated(3)}},
		},
		{
			category: "Fiksi",
			book: entities.Book{
				Title:       "The Time Machine",
				Author:      "H. G. Wells",
				Publisher:   "William Heinemann",
				PublishDate: date(1895, time.May, 7),
				Synopsis: "A Victorian inventor travels to the year 802,701 and finds humanity split into the " +
					"gentle Eloi and the subterranean Morlocks.",
			},
			views: []sampleView{{"user", nil}, {"user", nil}, {"admin", nil}, {"admin", nil}},
		},
		{
			category: "Sejarah",
			book: entities.Book{
				Title:       "Max Havelaar",
				Author:      "Multatuli",
				Publisher:   "J. de Ruyter",
				PublishDate: date(1860, time.May, 14),
				Synopsis: "Seorang asisten residen di Lebak menentang pemerasan rakyat oleh penguasa setempat " +
					"dan pemerintah kolonial, sebuah gugatan terhadap Sistem Tanam Paksa.",
			},
			chapters: []entities.BookContent{
				{Position: 1, Title: "Batavus Droogstoppel", Content: "Saya makelar kopi, tinggal di Lauriergracht No. 37. " +
					"Bukan kebiasaan saya menulis roman atau hal-hal semacam itu, dan lama sekali saya ragu-ragu."},
				{Position: 2, Title: "Saijah dan Adinda", Content: "Ayah Saijah mempunyai seekor kerbau yang dipakainya membajak sawah."},
			},
			views: []sampleView{{"admin", rated(5)}, {"user", nil}},
		},
		{
			category: "Biografi",
			book: entities.Book{
				Title:       "Habis Gelap Terbitlah Terang",
				Author:      "R. A. Kartini",
				Publisher:   "Balai Pustaka",
				PublishDate: date(1911, time.January, 1),
				Synopsis: "Kumpulan surat Kartini kepada sahabat-sahabatnya di Eropa tentang pendidikan perempuan, " +
					"adat Jawa, dan cita-cita kemajuan bangsanya.",
			},
			views: []sampleView{{"user", rated(4)}},
		},
		{
			category: "Sains",
			book: entities.Book{
				Title:       "On the Origin of Species",
				Author:      "Charles Darwin",
				Publisher:   "John Murray",
				PublishDate: date(1859, time.November, 24),
				Synopsis: "Darwin sets out the theory that populations evolve over generations through natural " +
					"selection, drawing on evidence gathered on the voyage of the Beagle.",
			},
			chapters: []entities.BookContent{
				{Position: 1, Title: "Variation under Domestication", Content: "When we look to the individuals of the same " +
					"variety or sub-variety of our older cultivated plants and animals, one of the first points which strikes us is " +
					"that they generally differ more from each other than do the individuals of any one species in a state of nature."},
			},
		},
	}
}

// Seed fills an empty catalog with sample categories, books, chapters and
// reader history. A catalog that already holds books is left untouched.
// Members must already exist.
func Seed(ctx context.Context, db *gorm.DB) (SeedResult, error) {
	log := logging.Component("seed")
	var result SeedResult

	var existing int64
	if err := db.WithContext(ctx).Model(&entities.Book{}).Count(&existing).Error; err != nil {
		return result, fmt.Errorf("count books: %w", err)
	}
	if existing > 0 {
		log.Info().Int64("books", existing).Msg("Catalog already populated, skipping seed")
		result.Skipped = true
		return result, nil
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories := make(map[string]uint, len(SampleCategories))
		for _, name := range SampleCategories {
			category := entities.Category{Name: name}
			err := tx.Where("name = ?", name).First(&category).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if err := tx.Create(&category).Error; err != nil {
					return fmt.Errorf("create category %s: %w", name, err)
				}
				result.Categories++
			} else if err != nil {
				return err
			}
			categories[name] = category.ID
		}

		var members []entities.Member
		if err := tx.Find(&members).Error; err != nil {
			return fmt.Errorf("load members: %w", err)
		}
		memberIDs := make(map[string]uint, len(members))
		for _, m := range members {
			memberIDs[m.Username] = m.ID
		}

		for _, sample := range sampleBooks() {
			book := sample.book
			book.CategoryID = categories[sample.category]
			if err := tx.Create(&book).Error; err != nil {
				return fmt.Errorf("create book %s: %w", book.Title, err)
			}
			result.Books++

			for _, chapter := range sample.chapters {
				chapter.BookID = book.ID
				if err := tx.Create(&chapter).Error; err != nil {
					return fmt.Errorf("create chapter %s: %w", chapter.Title, err)
				}
				result.Chapters++
			}

			for _, view := range sample.views {
				memberID, ok := memberIDs[view.member]
				if !ok {
					continue
				}
				event := entities.BookHistory{BookID: book.ID, MemberID: memberID, Rating: view.rating}
				if err := tx.Create(&event).Error; err != nil {
					return fmt.Errorf("create view of %s: %w", book.Title, err)
				}
				result.Views++
			}
			log.Debug().Str("title", book.Title).Str("category", sample.category).Msg("Seeded book")
		}
		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}

	log.Info().
		Int("categories", result.Categories).
		Int("books", result.Books).
		Int("chapters", result.Chapters).
		Int("views", result.Views).
		Msg("Catalog seeded")
	return result, nil
}
