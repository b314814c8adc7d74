package browser

// stealthScript 在每个新文档上执行，抹掉最常见的自动化痕迹。
// 对应站点目前只校验 webdriver 标志和少数指纹，不追求全面伪装。
const stealthScript = `
Object.defineProperty(navigator, 'webdriver', { get: () => undefined });
Object.defineProperty(navigator, 'plugins', { get: () => [1, 2, 3, 4, 5] });
Object.defineProperty(navigator, 'languages', { get: () => ['en-US', 'en'] });
Object.defineProperty(navigator, 'hardwareConcurrency', { get: () => 4 });
window.chrome = window.chrome || { runtime: {} };
if (window.navigator.permissions && window.navigator.permissions.query) {
	const originalQuery = window.navigator.permissions.query.bind(window.navigator.permissions);
	window.navigator.permissions.query = (parameters) => (
		parameters.name === 'notifications'
			? Promise.resolve({ state: Notification.permission })
			: originalQuery(parameters)
	);
}
if (typeof WebGLRenderingContext !== 'undefined') {
	const getParameter = WebGLRenderingContext.prototype.getParameter;
	WebGLRenderingContext.prototype.getParameter = function (parameter) {
		if (parameter === 37445) { return 'Intel Open Source Technology Center'; }
		if (parameter === 37446) { return 'Mesa DRI Intel(R) HD Graphics'; }
		return getParameter.call(this, parameter);
	};
}
`
