package fragment

// Fragment is one on-disk unit of a dataset write: the set of data files
// produced from a contiguous run of rows.
type Fragment struct {
	fragmentId int64
	files      []string
	rows       int64
}

type FragmentVector []Fragment

func ToFilesVector(fragments []Fragment) []string {
	files := make([]string, 0)
	for _, fragment := range fragments {
		files = append(files, fragment.files...)
	}
	return files
}

func NewFragment(fragmentId int64) *Fragment {
	return &Fragment{
		fragmentId: fragmentId,
		files:      make([]string, 0),
	}
}

func (f *Fragment) AddFile(file string) {
	f.files = append(f.files, file)
}

func (f *Fragment) AddRows(n int64) {
	f.rows += n
}

func (f *Fragment) Files() []string {
	return f.files
}

func (f *Fragment) Rows() int64 {
	return f.rows
}

func (f *Fragment) FragmentId() int64 {
	return f.fragmentId
}

func (f *Fragment) SetFragmentId(fragmentId int64) {
	f.fragmentId = fragmentId
}
