package database

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	m "github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/model"
	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/utilities"
)

var testDBInstance *DBinstanceStruct
var teardown func(context.Context, ...testcontainers.TerminateOption) error

// Exported test users & profiles
var (
	TestAdminUser    m.User
	TestUserTalent1  m.User
	TestUserTalent2  m.User
	TestUserCompany1 m.User
	TestUserCompany2 m.User
	TestTalent1      m.TalentProfile
	TestTalent2      m.TalentProfile
	TestCompany1     m.CompanyProfile
	TestCompany2     m.CompanyProfile

	// Plain password shared by all seeded users
	TestSeedPassword = "SeedPass123!"

	// Exported seeded job posts
	TestJobPost1 m.JobPost
	TestJobPost2 m.JobPost
	TestJobPost3 m.JobPost
)

// GetTestDB starts a PostgreSQL test container and returns a teardown function,
// the DB instance, and any error encountered during setup.
func GetTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, *DBinstanceStruct, error) {

	if testDBInstance != nil && teardown != nil {
		return teardown, testDBInstance, nil
	}

	// Database configuration
	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:latest",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		return nil, nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), nat.Port("5432/tcp"))
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	config := &DBConfig{
		useConstr: true,
		Constr:    fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", dbHost, dbPort.Port(), dbUser, dbPwd, dbName),
	}

	db, err := NewDBInstance(config)
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	// Seed sample talents, companies and job posts
	if err := seedTestData(db); err != nil {
		_ = dbContainer.Terminate(context.Background())
		return nil, nil, err
	}

	testDBInstance = db
	teardown = dbContainer.Terminate

	return dbContainer.Terminate, db, nil
}

// seedTestData inserts sample talent and company records (2 each) if empty.
func seedTestData(db *DBinstanceStruct) error {
	var userCount int64
	if err := db.Model(&m.User{}).Count(&userCount).Error; err != nil {
		return err
	}

	// Ignore admin user that got create during NewDBInstance
	if userCount > 1 {
		return loadTestData(db)
	}

	tels := []*string{ptr("0100000001"), ptr("0100000002"), ptr("0200000001"), ptr("0200000002"), ptr("0300000001")}
	emails := []*string{ptr("talent1@example.com"), ptr("talent2@example.com"), ptr("company1@example.com"), ptr("company2@example.com"), ptr("admin@example.com")}
	userSpecs := []struct {
		username string
		email    *string
		tel      *string
		role     string
	}{
		{"talent_user_1", emails[0], tels[0], m.RoleTalent},
		{"talent_user_2", emails[1], tels[1], m.RoleTalent},
		{"company_user_1", emails[2], tels[2], m.RoleCompany},
		{"company_user_2", emails[3], tels[3], m.RoleCompany},
		{"admin_user", emails[4], tels[4], m.RoleAdmin},
	}

	// Pre-hash shared password for all seeded users
	hashedPwd, errHash := utilities.HashPassword(TestSeedPassword)
	if errHash != nil {
		return errHash
	}

	users := make([]m.User, 0, len(userSpecs))
	for _, s := range userSpecs {
		users = append(users, m.User{
			ID:       uuid.New(),
			Username: s.username,
			ContactInfo: m.ContactInfo{
				Email: s.email,
				Tel:   s.tel,
			},
			Role:           s.role,
			Password:       hashedPwd,
			ProfilePicture: "",
		})
	}

	if err := db.Create(&users).Error; err != nil {
		return err
	}

	// Map created users to exported variables
	for _, u := range users {
		switch u.Username {
		case "talent_user_1":
			TestUserTalent1 = u
		case "talent_user_2":
			TestUserTalent2 = u
		case "company_user_1":
			TestUserCompany1 = u
		case "company_user_2":
			TestUserCompany2 = u
		case "admin_user":
			TestAdminUser = u
		}
	}

	talentProfiles := []m.TalentProfile{
		{
			UserID: TestUserTalent1.ID,
			EditableTalentInfo: m.EditableTalentInfo{
				FirstName: "Alice",
				LastName:  "Nguyen",
				Title:     "Backend Engineer",
				Location:  "Casablanca",
				Skills:    pq.StringArray{"Go", "PostgreSQL", "Docker"},
			},
		},
		{
			UserID: TestUserTalent2.ID,
			EditableTalentInfo: m.EditableTalentInfo{
				FirstName: "Bob",
				LastName:  "Somsak",
				Title:     "Data Analyst",
				Location:  "Rabat",
				Skills:    pq.StringArray{"SQL", "Python"},
			},
		},
	}
	if err := db.Create(&talentProfiles).Error; err != nil {
		return err
	}

	sizeM, sizeL := "M", "L"
	companies := []m.CompanyProfile{
		{
			UserID: TestUserCompany1.ID,
			EditableCompanyInfo: m.EditableCompanyInfo{
				Name:     "TechNova",
				Overview: "Innovative platform solutions",
				Industry: "Software",
				Size:     &sizeM,
			},
		},
		{
			UserID: TestUserCompany2.ID,
			EditableCompanyInfo: m.EditableCompanyInfo{
				Name:     "DataForge",
				Overview: "Data analytics consulting",
				Industry: "Consulting",
				Size:     &sizeL,
			},
		},
	}
	if err := db.Create(&companies).Error; err != nil {
		return err
	}

	TestTalent1 = talentProfiles[0]
	TestTalent2 = talentProfiles[1]
	TestCompany1 = companies[0]
	TestCompany2 = companies[1]

	// Seed job posts (only if none exist yet)
	var jobPostCount int64
	if err := db.Model(&m.JobPost{}).Count(&jobPostCount).Error; err != nil {
		return err
	}
	if jobPostCount == 0 {
		remote := true
		onsite := false
		min1, max1 := 45000, 65000
		min2, max2 := 50000, 80000
		min3, max3 := 40000, 55000

		jobPosts := []m.JobPost{
			{
				CompanyID: TestCompany1.UserID,
				Status:    m.JobStatusActive,
				EditableJobPostInfo: m.EditableJobPostInfo{
					Title:     "Backend Engineer",
					Desc:      "Work on Go microservices and database layers.",
					Req:       "Go basics; SQL familiarity",
					Location:  "Casablanca (Hybrid)",
					Type:      "Full-time",
					SalaryMin: &min1,
					SalaryMax: &max1,
					Remote:    &onsite,
					Tags:      []string{"go", "backend", "api"},
				},
			},
			{
				CompanyID: TestCompany1.UserID,
				Status:    m.JobStatusActive,
				EditableJobPostInfo: m.EditableJobPostInfo{
					Title:     "Frontend Developer",
					Desc:      "Build the component library in React.",
					Req:       "JS/TS fundamentals",
					Location:  "Remote",
					Type:      "Full-time",
					SalaryMin: &min2,
					SalaryMax: &max2,
					Remote:    &remote,
					Tags:      []string{"react", "typescript", "ui"},
				},
			},
			{
				CompanyID: TestCompany2.UserID,
				Status:    m.JobStatusActive,
				EditableJobPostInfo: m.EditableJobPostInfo{
					Title:     "Data Analyst",
					Desc:      "Support data cleansing and dashboard creation.",
					Req:       "SQL; basic statistics",
					Location:  "Rabat (On-site)",
					Type:      "Contract",
					SalaryMin: &min3,
					SalaryMax: &max3,
					Remote:    &onsite,
					Tags:      []string{"data", "sql", "analytics"},
				},
			},
		}

		if err := db.Create(&jobPosts).Error; err != nil {
			return err
		}
		if len(jobPosts) > 0 {
			TestJobPost1 = jobPosts[0]
		}
		if len(jobPosts) > 1 {
			TestJobPost2 = jobPosts[1]
		}
		if len(jobPosts) > 2 {
			TestJobPost3 = jobPosts[2]
		}
	}

	return nil
}

// loadTestData populates exported variables when records already exist.
func loadTestData(db *DBinstanceStruct) error {
	var users []m.User
	if err := db.Where("username IN ?", []string{
		"talent_user_1", "talent_user_2", "company_user_1", "company_user_2",
	}).Find(&users).Error; err != nil {
		return err
	}
	for _, u := range users {
		switch u.Username {
		case "talent_user_1":
			TestUserTalent1 = u
		case "talent_user_2":
			TestUserTalent2 = u
		case "company_user_1":
			TestUserCompany1 = u
		case "company_user_2":
			TestUserCompany2 = u
		}
	}

	_ = db.First(&TestTalent1, "user_id = ?", TestUserTalent1.ID).Error
	_ = db.First(&TestTalent2, "user_id = ?", TestUserTalent2.ID).Error
	_ = db.First(&TestCompany1, "user_id = ?", TestUserCompany1.ID).Error
	_ = db.First(&TestCompany2, "user_id = ?", TestUserCompany2.ID).Error

	// Load first three job posts deterministically
	var posts []m.JobPost
	if err := db.Order("post_time ASC").Limit(3).Find(&posts).Error; err == nil {
		if len(posts) > 0 {
			TestJobPost1 = posts[0]
		}
		if len(posts) > 1 {
			TestJobPost2 = posts[1]
		}
		if len(posts) > 2 {
			TestJobPost3 = posts[2]
		}
	}

	return nil
}

// ptr helper
func ptr[T any](v T) *T { return &v }
