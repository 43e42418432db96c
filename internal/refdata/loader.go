package refdata

import (
	"encoding/json"
	"os"
	"path/filepath"

	engerrors "github.com/iris-health/medicare-repricer/internal/errors"
)

// fixed reference data file names, per the data directory contract.
const (
	fileRVU          = "rvu_data.json"
	fileGPCI         = "gpci_data.json"
	fileMSDRG        = "ms_drg_data.json"
	fileWageIndex    = "wage_index_data.json"
	fileHospital     = "hospital_data.json"
	fileICD10CM      = "icd10_cm_data.json"
	fileICD10PCS     = "icd10_pcs_data.json"
	fileMDC          = "mdc_definitions.json"
	fileGroupingRule = "drg_grouping_rules.json"
	fileZipLocality  = "zip_locality_data.json"
)

// loader reads the fixed reference data files from a single directory and
// assembles a Store. Unlike the teacher's master-file indirection (a
// main.json pointing at each config file by name), this data directory's
// file identities are fixed by contract, so no master file is needed.
type loader struct {
	dataDirectory string
}

// Load builds a Store from the JSON reference files in dataDirectory. A
// missing directory, unreadable file, or malformed JSON returns a
// construction-time *errors.EngineError; the Store itself is never
// returned half-populated on error.
func Load(dataDirectory string, scalars Scalars) (*Store, error) {
	info, err := os.Stat(dataDirectory)
	if err != nil || !info.IsDir() {
		return nil, engerrors.Wrap(err, engerrors.ErrDataDirNotFound)
	}

	l := loader{dataDirectory: dataDirectory}

	var rvuRecords []RVURecord
	if err := l.readJSON(fileRVU, &rvuRecords); err != nil {
		return nil, err
	}

	var gpciRecords []GPCIRecord
	if err := l.readJSON(fileGPCI, &gpciRecords); err != nil {
		return nil, err
	}

	var msdrgRecords []MSDRGRecord
	if err := l.readJSON(fileMSDRG, &msdrgRecords); err != nil {
		return nil, err
	}

	var wageRecords []WageIndexRecord
	if err := l.readJSON(fileWageIndex, &wageRecords); err != nil {
		return nil, err
	}

	var hospitalRecords []HospitalRecord
	if err := l.readJSON(fileHospital, &hospitalRecords); err != nil {
		return nil, err
	}

	var cmFile icd10CMFile
	if err := l.readJSON(fileICD10CM, &cmFile); err != nil {
		return nil, err
	}

	var pcsFile icd10PCSFile
	if err := l.readJSON(fileICD10PCS, &pcsFile); err != nil {
		return nil, err
	}

	var mdcRecords []MDCDefinition
	if err := l.readJSON(fileMDC, &mdcRecords); err != nil {
		return nil, err
	}

	var ruleRecords []GroupingRule
	if err := l.readJSON(fileGroupingRule, &ruleRecords); err != nil {
		return nil, err
	}

	var zipRecords []ZipLocalityEntry
	if err := l.readJSON(fileZipLocality, &zipRecords); err != nil {
		return nil, err
	}

	s := &Store{
		rvu:      make(map[rvuKey]RVURecord, len(rvuRecords)),
		gpci:     make(map[string]GPCIRecord, len(gpciRecords)),
		msdrg:    make(map[string]MSDRGRecord, len(msdrgRecords)),
		wage:     make(map[string]WageIndexRecord, len(wageRecords)),
		hospital: make(map[string]HospitalRecord, len(hospitalRecords)),
		diag:     make(map[string]ICD10CMEntry),
		proc:     make(map[string]ICD10PCSEntry),
		mdc:      make(map[string]MDCDefinition, len(mdcRecords)),
		rules:    make(map[string][]GroupingRule),
		zip:             make(map[string]string, len(zipRecords)),
		Scalars:         scalars,
		groupingVersion: cmFile.Version,
	}

	for _, r := range rvuRecords {
		mod := ""
		if r.Modifier != nil {
			mod = *r.Modifier
		}
		s.rvu[rvuKey{code: r.ProcedureCode, modifier: mod}] = r
	}
	for _, g := range gpciRecords {
		s.gpci[g.Locality] = g
	}
	for _, d := range msdrgRecords {
		s.msdrg[d.MSDRG] = d
	}
	for _, w := range wageRecords {
		s.wage[w.CBSACode] = w
	}
	for _, h := range hospitalRecords {
		s.hospital[h.ProviderNumber] = h
	}
	for _, section := range cmFile.Codes {
		for code, entry := range section {
			entry.Code = code
			s.diag[code] = entry
		}
	}
	for _, group := range pcsFile.Procedures {
		for code, entry := range group {
			entry.Code = code
			s.proc[code] = entry
		}
	}
	for _, m := range mdcRecords {
		s.mdc[m.MDC] = m
	}
	for _, r := range ruleRecords {
		s.rules[r.MDC] = append(s.rules[r.MDC], r)
	}
	for _, z := range zipRecords {
		s.zip[z.ZipPrefix] = z.Locality
	}

	if err := validateStore(s); err != nil {
		return nil, err
	}

	return s, nil
}

// readJSON reads and unmarshals a single reference data file, translating
// I/O and decode failures into construction-time EngineErrors.
func (l loader) readJSON(name string, target any) error {
	path := filepath.Join(l.dataDirectory, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return engerrors.Wrap(err, engerrors.ErrReferenceFileUnreadable)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return engerrors.Wrap(err, engerrors.ErrReferenceFileMalformed)
	}
	return nil
}
