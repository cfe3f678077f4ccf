package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"yatube/internal/models"

	"gorm.io/gorm"
)

// Seeder populates the database with demo data.
type Seeder struct {
	db   *gorm.DB
	f    *Factory
	opts Options
	r    *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	//nolint:gosec // weak randomness is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Seeder{db: db, f: NewFactory(db, opts), opts: opts, r: r}
}

// ClearAll removes all seedable data. Built-in groups are recreated by
// Groups on the next run.
func (s *Seeder) ClearAll() error {
	log.Println("clearing existing data...")
	for _, model := range []interface{}{
		&models.Follow{}, &models.Comment{}, &models.Post{}, &models.Group{}, &models.User{},
	} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedCommunity creates count users and a follow mesh between them. Every
// user follows a random subset of the others.
func (s *Seeder) SeedCommunity(count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	// a couple of well-known accounts for manual testing
	if count >= 2 {
		for _, name := range []string{"leo", "sphinx"} {
			name := name
			user, err := s.f.CreateUser(func(u *models.User) {
				u.Username = name
				u.Email = fmt.Sprintf("%s@example.com", name)
				u.Bio = "Демо-аккаунт."
			})
			if err != nil {
				return nil, fmt.Errorf("create user %s: %w", name, err)
			}
			users = append(users, user)
		}
	}

	for i := len(users); i < count; i++ {
		user, err := s.f.CreateUser()
		if err != nil {
			log.Printf("skipping user: %v", err)
			continue
		}
		users = append(users, user)
		if i > 0 && i%100 == 0 {
			log.Printf("created %d users...", i)
		}
	}

	// follow mesh: each user follows roughly a third of the others
	for _, user := range users {
		for _, author := range users {
			if user.ID == author.ID || s.r.Float64() > 0.33 {
				continue
			}
			if err := s.f.CreateFollow(user, author); err != nil {
				return nil, fmt.Errorf("create follow: %w", err)
			}
		}
	}

	return users, nil
}

// SeedContent creates count posts spread across the seeded users and the
// built-in groups, then sprinkles comments over them.
func (s *Seeder) SeedContent(users []*models.User, count int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to author posts")
	}

	var groups []models.Group
	if err := s.db.Find(&groups).Error; err != nil {
		return nil, fmt.Errorf("load groups: %w", err)
	}

	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[s.r.Intn(len(users))]
		post := s.f.BuildPost(author, func(p *models.Post) {
			// roughly 60% of posts go into a group
			if len(groups) > 0 && s.r.Float64() < 0.6 {
				id := groups[s.r.Intn(len(groups))].ID
				p.GroupID = &id
			}
		})
		posts = append(posts, post)
	}
	if err := s.f.CreatePostsBatch(posts); err != nil {
		return nil, fmt.Errorf("create posts: %w", err)
	}

	ratio := s.opts.CommentRatio
	if ratio <= 0 {
		ratio = 0.5
	}
	for _, post := range posts {
		if s.r.Float64() > ratio {
			continue
		}
		n := 1 + s.r.Intn(3)
		for j := 0; j < n; j++ {
			commenter := users[s.r.Intn(len(users))]
			if _, err := s.f.CreateComment(commenter, post); err != nil {
				return nil, fmt.Errorf("create comment: %w", err)
			}
		}
	}

	log.Printf("created %d posts", len(posts))
	return posts, nil
}

// Run performs a full seeding pass per the Seeder's Options.
func (s *Seeder) Run() error {
	log.Printf("seeding %d users and %d posts...", s.opts.NumUsers, s.opts.NumPosts)

	if s.opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			log.Printf("warning: could not clear all existing data: %v", err)
		}
	}

	if err := Groups(s.db); err != nil {
		return fmt.Errorf("seed groups: %w", err)
	}

	users, err := s.SeedCommunity(s.opts.NumUsers)
	if err != nil {
		return fmt.Errorf("seed community: %w", err)
	}
	log.Printf("%d users created", len(users))

	if _, err := s.SeedContent(users, s.opts.NumPosts); err != nil {
		return fmt.Errorf("seed content: %w", err)
	}

	log.Println("seeding completed")
	return nil
}
