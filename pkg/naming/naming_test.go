package naming

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestToLabel(t *testing.T) {
	cases := map[string]string{
		"":          "",
		"name":      "Name",
		"firstName": "FirstName",
		"Email":     "Email",
		"émail":     "Émail",
		"_id":       "_id",
	}
	for input, want := range cases {
		if got := ToLabel(input); got != want {
			t.Fatalf("ToLabel(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestToComponentNameIsStable(t *testing.T) {
	for _, name := range []string{"ContactForm", "submitForm", "userProfile"} {
		first := ToComponentName(name)
		if first != name {
			t.Fatalf("ToComponentName(%q) = %q", name, first)
		}
		if second := ToComponentName(name); second != first {
			t.Fatalf("ToComponentName not stable: %q vs %q", first, second)
		}
	}
}

func TestFormComponentName(t *testing.T) {
	if got := FormComponentName("Contact"); got != "ContactForm" {
		t.Fatalf("unexpected component name %q", got)
	}
	if got := FormComponentName("ContactForm"); got != "ContactForm" {
		t.Fatalf("suffix should not be duplicated, got %q", got)
	}
}

func TestFilename(t *testing.T) {
	if got := Filename("UserProfile", SuffixServerActions); got != "userprofile_server_actions.ts" {
		t.Fatalf("unexpected filename %q", got)
	}
	if got := Filename("ContactForm", SuffixForm); got != "contactform_form.tsx" {
		t.Fatalf("unexpected filename %q", got)
	}
	if got := ModulePath("userprofile_server_actions.ts"); got != "./userprofile_server_actions" {
		t.Fatalf("unexpected module path %q", got)
	}
}

func TestPairNames(t *testing.T) {
	got := PairNames("createUser")
	want := Pair{
		Action:       "createUser",
		ActionAlias:  "createUserAction",
		Form:         "createUserForm",
		Schema:       "formSchema",
		ActionFile:   "createuser_server_actions.ts",
		FormFile:     "createuser_form.tsx",
		ActionModule: "./createuser_server_actions",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("pair names mismatch (-want +got):\n%s", diff)
	}
}
