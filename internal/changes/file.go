package changes

// FileStatus is a bitset describing how a file differs from HEAD, both in the
// index and in the working tree.
type FileStatus uint16

const (
	IndexNew FileStatus = 1 << iota
	IndexModified
	IndexDeleted
	IndexRenamed
	IndexTypeChange
	WorktreeNew
	WorktreeModified
	WorktreeDeleted
	WorktreeRenamed
	WorktreeTypeChange
)

// Has reports whether any of the bits in flag are set.
func (s FileStatus) Has(flag FileStatus) bool {
	return s&flag != 0
}

type ChangedFile struct {
	Path   string
	Status FileStatus
}

func NewChangedFile(path string, status FileStatus) ChangedFile {
	return ChangedFile{Path: path, Status: status}
}

func (f ChangedFile) IsNew() bool {
	return f.Status.Has(IndexNew | WorktreeNew)
}

func (f ChangedFile) IsModified() bool {
	return f.Status.Has(IndexModified | WorktreeModified | IndexTypeChange | WorktreeTypeChange)
}

func (f ChangedFile) IsDeleted() bool {
	return f.Status.Has(IndexDeleted | WorktreeDeleted)
}

func (f ChangedFile) IsRenamed() bool {
	return f.Status.Has(IndexRenamed | WorktreeRenamed)
}

// Kind returns a one-word description of the change, checking the
// predicates in the order new, modified, deleted, renamed.
func (f ChangedFile) Kind() string {
	switch {
	case f.IsNew():
		return "new"
	case f.IsModified():
		return "modified"
	case f.IsDeleted():
		return "deleted"
	case f.IsRenamed():
		return "renamed"
	default:
		return "changed"
	}
}
