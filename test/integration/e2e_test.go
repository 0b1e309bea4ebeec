//go:build integration

package integration_test

import (
	"testing"

	"github.com/cuba-labs/cuba-cli/internal/clierr"
	"github.com/cuba-labs/cuba-cli/internal/project/projecttest"
)

const (
	webSrc     = "modules/web/src/com/acme/sample/"
	screensXML = webSrc + "web-screens.xml"
	menuXML    = webSrc + "web-menu.xml"
)

// TestInteractiveShellSession drives every generator through one shell
// session, answering prompts on stdin.
func TestInteractiveShellSession(t *testing.T) {
	env := setupTestEnv(t, projecttest.Options{})

	input := lines(
		// create-screen with a menu entry
		"create-screen",
		"orders-browse", "", "y", "Orders",
		// editor for Order with all defaults
		"create-entity-screen",
		"com.acme.sample.entity.Order", "", "", "", "",
		// listener: first round rejects every interface
		"create-entity-listener",
		"CustomerListener", "com.acme.sample.entity.Customer", "", "",
		"n", "n", "n", "n", "n", "n", "n", "n",
		"y", "n", "n", "n", "n", "n", "n", "n",
		// both themes, one at a time
		"extend-theme",
		"halo", "y",
		"extend-theme",
		"y",
		"extend-theme",
		"exit",
	)

	res := env.run(t, input, "shell")
	if res.Err != nil {
		t.Fatalf("shell: %v\nstderr:\n%s", res.Err, res.Stderr)
	}

	assertFileExists(t, env.path(webSrc+"web/screens/orders-browse.xml"))
	assertFileExists(t, env.path(webSrc+"web/screens/OrdersBrowse.java"))
	assertContains(t, env.read(t, menuXML), `<item id="orders-browse" screen="orders-browse"/>`)
	assertContains(t, env.read(t, webSrc+"web/messages.properties"), "menu-config.orders-browse = Orders")

	assertFileExists(t, env.path(webSrc+"web/order/order-edit.xml"))
	assertFileExists(t, env.path(webSrc+"web/order/OrderEdit.java"))
	assertContains(t, env.read(t, screensXML), `id="sample$Order.edit"`)

	assertContains(t, res.Stdout, "Listener must implement at least one of the interfaces")
	listener := env.read(t, "modules/core/src/com/acme/sample/listener/CustomerListener.java")
	assertContains(t, listener, "BeforeInsertEntityListener<Customer>")
	assertCount(t, listener, "EntityListener<Customer>", 1)
	assertContains(t, env.read(t, "modules/global/src/com/acme/sample/entity/Customer.java"), `@Listeners({"sample_CustomerListener"})`)

	assertFileExists(t, env.path("modules/web/themes/halo/styles.scss"))
	assertFileExists(t, env.path("modules/web/themes/hover/styles.scss"))
	assertContains(t, res.Stdout, "Only hover theme can be extended.")
	assertContains(t, res.Stderr, "Halo and hover themes already extended")
	assertCount(t, env.read(t, "settings.gradle"), "-web-themes\").projectDir", 1)
}

// TestRepeatedGenerationIsRejected checks that a second run with the same
// answers changes nothing.
func TestRepeatedGenerationIsRejected(t *testing.T) {
	env := setupTestEnv(t, projecttest.Options{})
	args := []string{"-n", "create-screen", "-PscreenName=customers", "-PaddToMenu=true", "-PmenuCaption=Customers"}

	if res := env.run(t, "", args...); res.Err != nil {
		t.Fatalf("first run: %v", res.Err)
	}
	screens := env.read(t, screensXML)
	menu := env.read(t, menuXML)

	res := env.run(t, "", args...)
	if res.Err == nil {
		t.Fatal("second run succeeded, want precondition failure")
	}
	if code := clierr.ExitCodeFromError(res.Err); code != clierr.ExitPrecondition {
		t.Errorf("exit code = %d, want %d", code, clierr.ExitPrecondition)
	}
	if got := env.read(t, screensXML); got != screens {
		t.Errorf("web-screens.xml changed on rejected run:\n%s", got)
	}
	if got := env.read(t, menuXML); got != menu {
		t.Errorf("web-menu.xml changed on rejected run:\n%s", got)
	}
}

// TestOldPlatformOffersHaloOnly covers the platform version gate.
func TestOldPlatformOffersHaloOnly(t *testing.T) {
	env := setupTestEnv(t, projecttest.Options{PlatformVersion: "6.9.2"})

	res := env.run(t, lines("y"), "extend-theme")
	if res.Err != nil {
		t.Fatalf("extend-theme: %v", res.Err)
	}
	assertContains(t, res.Stdout, "Only halo theme can be extended.")
	assertFileNotExists(t, env.path("modules/web/themes/hover"))

	res = env.run(t, "", "extend-theme")
	if code := clierr.ExitCodeFromError(res.Err); code != clierr.ExitPrecondition {
		t.Errorf("exit code = %d, want %d (%v)", code, clierr.ExitPrecondition, res.Err)
	}
}

// TestDeclinedThemeWritesNothing checks the silent cancellation path.
func TestDeclinedThemeWritesNothing(t *testing.T) {
	env := setupTestEnv(t, projecttest.Options{})
	settings := env.read(t, "settings.gradle")

	res := env.run(t, lines("halo", "n"), "extend-theme")
	if !clierr.IsSilent(res.Err) {
		t.Fatalf("err = %v, want silent failure", res.Err)
	}
	assertFileNotExists(t, env.path("modules/web/themes/halo"))
	if got := env.read(t, "settings.gradle"); got != settings {
		t.Errorf("settings.gradle changed:\n%s", got)
	}
}
