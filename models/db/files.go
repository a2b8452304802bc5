package dbmodels

type FileType string

const (
	ResumeFileType FileType = "resume"
	LogoFileType   FileType = "logo"
	DocFileType    FileType = "doc"
)

type FileStorage struct {
	BaseCompanyModel
	CandidateID string   `gorm:"type:varchar(36);index"`
	FileType    FileType `gorm:"type:varchar(50)"`
	FileName    string   `gorm:"type:varchar(255)"`
	ContentType string   `gorm:"type:varchar(100)"`
	Size        int64
}
